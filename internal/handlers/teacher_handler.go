package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	service services.TeacherService
}

func NewTeacherHandler(service services.TeacherService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *TeacherHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Registering teacher")

	var req services.TeacherCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	teacher, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "teacher registered", teacher)
}

func (h *TeacherHandler) GetAll(c *gin.Context) {
	h.LogRequest(c, "Listing teachers")

	teachers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "teachers retrieved", teachers, len(teachers))
}

func (h *TeacherHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting teacher", "teacher_id", id)

	teacher, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "teacher retrieved", teacher)
}

func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating teacher", "teacher_id", id)

	var req services.TeacherUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	teacher, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "teacher updated", teacher)
}

func (h *TeacherHandler) Delete(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting teacher", "teacher_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "teacher deleted", nil)
}

func (h *TeacherHandler) GetByName(c *gin.Context) {
	name := c.Param("name")
	h.LogRequest(c, "Getting teacher by name", "teacher_name", name)

	teacher, err := h.service.GetByName(c.Request.Context(), name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "teacher retrieved", teacher)
}

func (h *TeacherHandler) GetByClass(c *gin.Context) {
	class := c.Param("class")
	h.LogRequest(c, "Listing teachers by class", "class_name", class)

	teachers, err := h.service.GetByClass(c.Request.Context(), class)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "teachers retrieved", teachers, len(teachers))
}

func (h *TeacherHandler) GetByDateRange(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Listing teachers by date range", "start_date", start, "end_date", end)

	teachers, err := h.service.GetByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "teachers retrieved", teachers, len(teachers))
}
