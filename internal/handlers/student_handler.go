package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

func (h *StudentHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	student, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "student registered", student)
}

func (h *StudentHandler) GetAll(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	students, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "students retrieved", students, len(students))
}

func (h *StudentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting student", "student_id", id)

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "student retrieved", student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating student", "student_id", id)

	var req services.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "student updated", student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "student deleted", nil)
}

func (h *StudentHandler) GetByClass(c *gin.Context) {
	classID := c.Param("class")
	h.LogRequest(c, "Listing students by class", "class_id", classID)

	students, err := h.service.GetByClass(c.Request.Context(), classID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "students retrieved", students, len(students))
}

func (h *StudentHandler) GetByGender(c *gin.Context) {
	gender := c.Param("gender")
	h.LogRequest(c, "Listing students by gender", "gender", gender)

	students, err := h.service.GetByGender(c.Request.Context(), gender)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "students retrieved", students, len(students))
}
