package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/services"
)

type EnrollmentHandler struct {
	Service *services.EnrollmentService
}

func NewEnrollmentHandler(service *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{Service: service}
}

// Enroll enrolls the signed-in student into a course.
// @Summary      Enroll in course
// @Tags         Enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "course_id"
// @Success      201   {object}  models.Enrollment
// @Failure      400   {object}  map[string]string
// @Router       /student/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req struct {
		CourseID int `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	studentID, _ := currentUser(c)

	e, err := h.Service.Enroll(studentID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCourseFull):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		}
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListMine lists the signed-in student's enrollments.
// @Summary      My enrollments
// @Tags         Enrollments
// @Produce      json
// @Success      200  {array}  models.Enrollment
// @Router       /student/enrollments [get]
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	studentID, _ := currentUser(c)
	limit, offset := pagination(c)
	out, err := h.Service.ListByStudent(studentID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list enrollments"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListByCourse lists enrollments for one course (instructor view).
// @Summary      Course roster
// @Tags         Enrollments
// @Produce      json
// @Param        id   path     int  true  "Course ID"
// @Success      200  {array}  models.Enrollment
// @Router       /instructor/courses/{id}/enrollments [get]
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	limit, offset := pagination(c)
	out, err := h.Service.ListByCourse(courseID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list enrollments"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Change enrollment status
// @Tags         Enrollments
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Enrollment ID"
// @Param        body  body      object  true  "status"
// @Success      200   {object}  models.Enrollment
// @Failure      400   {object}  map[string]string
// @Router       /api/enrollments/{id}/status [post]
func (h *EnrollmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.Service.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBadTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update enrollment"})
		}
		return
	}
	c.JSON(http.StatusOK, e)
}
