package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/models"
	"uniportal/internal/services"
)

type UserHandler struct {
	Service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

type createUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	Role            string `json:"role" binding:"required"`
	FullName        string `json:"full_name"`
	MfaEmailEnabled bool   `json:"mfa_email_enabled"`
}

// @Summary      Create account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      createUserRequest  true  "Account"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Username:        req.Username,
		Email:           req.Email,
		Role:            req.Role,
		FullName:        req.FullName,
		MfaEmailEnabled: req.MfaEmailEnabled,
	}
	if err := h.Service.Register(user, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Get account
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      List accounts
// @Tags         Users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.Service.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Update account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "User ID"
// @Param        user  body      models.User  true  "Fields"
// @Success      200   {object}  models.User
// @Router       /api/admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user.ID = id
	if err := h.Service.Update(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Deactivate account
// @Description  Existing sessions stay valid until their token expires
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.SetActive(id, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
}

// @Summary      Delete account
// @Tags         Users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// @Summary      Count accounts by role
// @Tags         Users
// @Produce      json
// @Param        role  path      string  true  "Role"
// @Success      200   {object}  map[string]int
// @Router       /api/admin/users/count/{role} [get]
func (h *UserHandler) CountByRole(c *gin.Context) {
	count, err := h.Service.GetCountByRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
