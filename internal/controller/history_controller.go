package controller

import (
	"errors"

	"careercoach_backend/internal/model"
	"careercoach_backend/internal/service"
	"careercoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	HistoryService *service.HistoryService
}

func NewHistoryController(historyService *service.HistoryService) *HistoryController {
	return &HistoryController{HistoryService: historyService}
}

// GetHistory godoc
// @Summary Get analysis history
// @Description Returns every saved analysis for the current user, keyed by career goal title
// @Tags history
// @Produce  json
// @Success 200 {object} util.Response{data=service.HistoryDocument} "History document"
// @Failure 401 {object} util.Response "Not authenticated"
// @Security BearerAuth
// @Router /api/history [get]
func (c *HistoryController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	doc, err := c.HistoryService.GetHistory(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, doc)
}

// SaveHistoryRequest defines model for a bulk history save
// swagger:model SaveHistoryRequest
type SaveHistoryRequest struct {
	Entries []model.AnalyzedJob `json:"entries" binding:"required"`
}

// SaveHistory godoc
// @Summary Save analysis history
// @Description Merge-writes the given entries into the user's history; entries with the same title are overwritten
// @Tags history
// @Accept  json
// @Produce  json
// @Param   body body SaveHistoryRequest true "Entries to save"
// @Success 200 {object} util.Response{data=object} "Saved"
// @Failure 400 {object} util.Response "Invalid request body"
// @Security BearerAuth
// @Router /api/history [put]
func (c *HistoryController) SaveHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.HistoryService.SaveHistory(claims.UserID, req.Entries); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"saved": len(req.Entries)})
}

// ProgressRequest defines model for a skill progress change
// swagger:model ProgressRequest
type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateSkillProgress godoc
// @Summary Update skill progress
// @Description Sets the learning progress of one skill inside a saved analysis; values outside 0-100 are clamped
// @Tags history
// @Accept  json
// @Produce  json
// @Param   title path string true "Career goal title"
// @Param   skill path string true "Skill name"
// @Param   body body ProgressRequest true "New progress value"
// @Success 200 {object} util.Response{data=model.AnalyzedJob} "Updated entry"
// @Failure 404 {object} util.Response "Entry or skill not found"
// @Security BearerAuth
// @Router /api/history/{title}/skills/{skill} [patch]
func (c *HistoryController) UpdateSkillProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.HistoryService.UpdateSkillProgress(
		claims.UserID, ctx.Param("title"), ctx.Param("skill"), *req.Progress)
	if err != nil {
		if errors.Is(err, util.ErrEntryNotFound) || errors.Is(err, util.ErrSkillNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, entry)
}

// DeleteEntry godoc
// @Summary Delete a history entry
// @Description Removes one saved analysis by its career goal title
// @Tags history
// @Produce  json
// @Param   title path string true "Career goal title"
// @Success 200 {object} util.Response{data=object} "Deleted"
// @Failure 404 {object} util.Response "Entry not found"
// @Security BearerAuth
// @Router /api/history/{title} [delete]
func (c *HistoryController) DeleteEntry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	title := ctx.Param("title")
	if err := c.HistoryService.DeleteEntry(claims.UserID, title); err != nil {
		if errors.Is(err, util.ErrEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": title})
}
