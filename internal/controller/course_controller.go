package controller

import (
	"errors"

	"careercoach_backend/internal/service"
	"careercoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// Search godoc
// @Summary Search the course catalog
// @Description Relays a free-text query to the Coursera catalog; long queries are truncated to their first words
// @Tags courses
// @Produce  json
// @Param   query query string true "Search terms"
// @Success 200 {object} service.CourseSearchResponse "Catalog results"
// @Failure 400 {object} util.Response "Missing query"
// @Failure 500 {object} util.Response "Catalog unavailable"
// @Router /api/courses [get]
func (c *CourseController) Search(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		util.BadRequest(ctx, "query parameter is required")
		return
	}

	resp, err := c.CourseService.Search(ctx.Request.Context(), query)
	if err != nil {
		var cfgErr *util.ConfigurationError
		if errors.As(err, &cfgErr) {
			util.Error(ctx, 503, cfgErr.Error())
			return
		}
		// The catalog proxy reports upstream failures as its own errors,
		// with the upstream detail in the body.
		ctx.JSON(500, gin.H{
			"error":   "Failed to fetch courses",
			"details": err.Error(),
		})
		return
	}

	// Raw catalog shape, not the standard envelope: the frontend consumes
	// the Coursera elements array directly.
	ctx.JSON(200, resp)
}
