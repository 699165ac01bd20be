package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/models"
	"uniportal/internal/services"
)

type ProgramHandler struct {
	Service *services.ProgramService
}

func NewProgramHandler(service *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{Service: service}
}

// @Summary      Create program
// @Tags         Programs
// @Accept       json
// @Produce      json
// @Param        program  body      models.Program  true  "Program"
// @Success      201      {object}  models.Program
// @Router       /api/admin/programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var p models.Program
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Create(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Get program
// @Tags         Programs
// @Produce      json
// @Param        id   path      int  true  "Program ID"
// @Success      200  {object}  models.Program
// @Router       /api/programs/{id} [get]
func (h *ProgramHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load program"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      List programs
// @Tags         Programs
// @Produce      json
// @Success      200  {array}  models.Program
// @Router       /api/programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	out, err := h.Service.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list programs"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update program
// @Tags         Programs
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Program ID"
// @Param        program  body      models.Program  true  "Fields"
// @Success      200      {object}  models.Program
// @Router       /api/admin/programs/{id} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var p models.Program
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = id
	if err := h.Service.Update(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update program"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete program
// @Tags         Programs
// @Produce      json
// @Param        id   path      int  true  "Program ID"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete program"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program deleted"})
}
