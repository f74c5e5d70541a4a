package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"careercoach_backend/internal/service"
	"careercoach_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxResumeSize = 10 << 20 // 10 MB

type AnalysisController struct {
	AnalysisService *service.AnalysisService
	StorageService  *service.StorageService
}

func NewAnalysisController(analysisService *service.AnalysisService, storageService *service.StorageService) *AnalysisController {
	return &AnalysisController{
		AnalysisService: analysisService,
		StorageService:  storageService,
	}
}

// AnalyzeRequest defines model for a career goal analysis
// swagger:model AnalyzeRequest
type AnalyzeRequest struct {
	Goal     string `json:"goal" binding:"required"`
	Location string `json:"location"`
}

// Analyze godoc
// @Summary Analyze a career goal
// @Description Runs the skill-gap, learning-path, course and job pipeline for the given goal and saves the result to the user's history
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   body body AnalyzeRequest true "Career goal and optional job location"
// @Success 200 {object} util.Response{data=service.AnalysisResult} "Analysis result"
// @Failure 400 {object} util.Response "Empty goal or missing configuration"
// @Failure 409 {object} util.Response "An analysis is already running for this user"
// @Failure 502 {object} util.Response "Upstream AI failure"
// @Security BearerAuth
// @Router /api/analysis [post]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var req AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AnalysisService.Analyze(ctx.Request.Context(), claims.UserID, req.Goal, req.Location)
	if err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// AnalyzeResume godoc
// @Summary Get AI feedback on a resume image
// @Description Uploads a resume screenshot and returns strengths, gaps and suggestions relative to the given career goal
// @Tags analysis
// @Accept  multipart/form-data
// @Produce  json
// @Param   goal formData string true "Career goal to evaluate against"
// @Param   file formData file true "Resume image (PNG or JPEG)"
// @Success 200 {object} util.Response{data=service.ResumeFeedback} "Resume feedback"
// @Failure 400 {object} util.Response "Missing goal, missing file or unsupported file type"
// @Failure 502 {object} util.Response "Upstream AI failure"
// @Security BearerAuth
// @Router /api/analysis/resume [post]
func (c *AnalysisController) AnalyzeResume(ctx *gin.Context) {
	goal := ctx.PostForm("goal")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "resume file is required")
		return
	}
	if fileHeader.Size > maxResumeSize {
		util.BadRequest(ctx, "resume file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, "only image resumes are supported")
		return
	}

	// Keep a copy of the upload so feedback can be revisited later.
	name := time.Now().Format("20060102") + "/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	if _, err := c.StorageService.Upload(ctx.Request.Context(), name, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	feedback, err := c.AnalysisService.AnalyzeResume(ctx.Request.Context(), goal, data, mimeType)
	if err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, feedback)
}

func (c *AnalysisController) writeAnalysisError(ctx *gin.Context, err error) {
	var cfgErr *util.ConfigurationError
	var upErr *util.UpstreamError
	var decErr *util.DecodeError

	switch {
	case errors.Is(err, util.ErrEmptyGoal):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAnalysisInFlight):
		util.Conflict(ctx, err.Error())
	case errors.As(err, &cfgErr):
		util.BadRequest(ctx, cfgErr.Error())
	case errors.As(err, &upErr):
		util.BadGateway(ctx, upErr.Error())
	case errors.As(err, &decErr):
		util.BadGateway(ctx, decErr.Error())
	case errors.Is(err, context.Canceled):
		util.Error(ctx, 499, "request cancelled")
	default:
		util.LogInternalError(ctx, err)
	}
}
