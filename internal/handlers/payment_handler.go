package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uniportal/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// @Summary      Record payment
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "enrollment_id, amount, currency"
// @Success      201   {object}  models.Payment
// @Failure      400   {object}  map[string]string
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req struct {
		EnrollmentID int     `json:"enrollment_id" binding:"required"`
		Amount       float64 `json:"amount" binding:"required"`
		Currency     string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.Service.Record(req.EnrollmentID, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      List payments for enrollment
// @Tags         Payments
// @Produce      json
// @Param        id   path     int  true  "Enrollment ID"
// @Success      200  {array}  models.Payment
// @Router       /api/enrollments/{id}/payments [get]
func (h *PaymentHandler) ListByEnrollment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	out, err := h.Service.ListByEnrollment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Refund payment
// @Tags         Payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  map[string]string
// @Router       /api/admin/payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Refund(id); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refund payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment refunded"})
}
