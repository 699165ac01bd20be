package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// @Summary      Portal summary
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  services.Summary
// @Router       /admin [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	data, err := h.Service.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      Filter enrollments
// @Tags         Analytics
// @Produce      json
// @Param        status     query    string  false  "Status"
// @Param        course_id  query    int     false  "Course"
// @Success      200        {array}  models.Enrollment
// @Router       /admin/enrollments [get]
func (h *AnalyticsHandler) FilterEnrollments(c *gin.Context) {
	status := c.Query("status")
	courseID, _ := strconv.Atoi(c.DefaultQuery("course_id", "0"))
	limit, offset := pagination(c)

	out, err := h.Service.FilterEnrollments(status, courseID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to filter enrollments"})
		return
	}
	c.JSON(http.StatusOK, out)
}
