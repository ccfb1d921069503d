package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

type PaymentHandler struct {
	BaseHandler
	service services.PaymentService
}

func NewPaymentHandler(service services.PaymentService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Recording payment")

	var req services.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	payment, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "payment recorded", payment)
}

func (h *PaymentHandler) GetAll(c *gin.Context) {
	h.LogRequest(c, "Listing payments")

	payments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "payments retrieved", payments, len(payments))
}

func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting payment", "payment_id", id)

	payment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "payment retrieved", payment)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating payment", "payment_id", id)

	var req services.PaymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	payment, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "payment updated", payment)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting payment", "payment_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "payment deleted", nil)
}

func (h *PaymentHandler) GetByStudent(c *gin.Context) {
	studentID, ok := h.parseUintParam(c, "student_id")
	if !ok {
		return
	}
	h.LogRequest(c, "Listing payments by student", "student_id", studentID)

	payments, err := h.service.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "payments retrieved", payments, len(payments))
}

func (h *PaymentHandler) GetByDateRange(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	h.LogRequest(c, "Listing payments by date range", "start_date", start, "end_date", end)

	payments, err := h.service.GetByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "payments retrieved", payments, len(payments))
}

func (h *PaymentHandler) GetByServiceType(c *gin.Context) {
	serviceType := c.Param("service_type")
	h.LogRequest(c, "Listing payments by service type", "service_type", serviceType)

	payments, err := h.service.GetByServiceType(c.Request.Context(), serviceType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "payments retrieved", payments, len(payments))
}

func (h *PaymentHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting payment stats")

	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "payment stats retrieved", stats)
}
