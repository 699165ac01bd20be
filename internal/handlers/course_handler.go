package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/models"
	"uniportal/internal/services"
)

type CourseHandler struct {
	Service *services.CourseService
}

func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{Service: service}
}

// @Summary      Create course
// @Tags         Courses
// @Accept       json
// @Produce      json
// @Param        course  body      models.Course  true  "Course"
// @Success      201     {object}  models.Course
// @Router       /api/admin/courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Create(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// @Summary      Get course
// @Tags         Courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  models.Course
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	course, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
		return
	}
	if course == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// @Summary      List courses
// @Tags         Courses
// @Produce      json
// @Success      200  {array}  models.Course
// @Router       /api/courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	out, err := h.Service.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courses"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListMine returns the courses taught by the signed-in instructor.
// @Summary      My courses
// @Tags         Courses
// @Produce      json
// @Success      200  {array}  models.Course
// @Router       /instructor/courses [get]
func (h *CourseHandler) ListMine(c *gin.Context) {
	userID, _ := currentUser(c)
	limit, offset := pagination(c)
	out, err := h.Service.ListByInstructor(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courses"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update course
// @Tags         Courses
// @Accept       json
// @Produce      json
// @Param        id      path      int            true  "Course ID"
// @Param        course  body      models.Course  true  "Fields"
// @Success      200     {object}  models.Course
// @Router       /api/admin/courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course.ID = id
	if err := h.Service.Update(&course); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// @Summary      Delete course
// @Tags         Courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete course"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}
