package controller

import (
	"errors"

	"careercoach_backend/internal/service"
	"careercoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

// Submit godoc
// @Summary Submit a contact message
// @Description Relays a contact-form message to the site administrator
// @Tags contact
// @Accept  json
// @Produce  json
// @Param   body body service.ContactMessage true "Contact message"
// @Success 200 {object} util.Response{data=object} "Message sent"
// @Failure 400 {object} util.Response "Missing fields or invalid email"
// @Failure 500 {object} util.Response "Mail relay failure"
// @Router /api/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var msg service.ContactMessage
	if err := ctx.ShouldBindJSON(&msg); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContactService.Relay(msg); err != nil {
		switch {
		case errors.Is(err, util.ErrMissingContactField), errors.Is(err, util.ErrInvalidEmail):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"sent": true})
}
