package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

type PrivilegeHandler struct {
	BaseHandler
	service services.PrivilegeService
}

func NewPrivilegeHandler(service services.PrivilegeService, logger utils.Logger) *PrivilegeHandler {
	return &PrivilegeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *PrivilegeHandler) Create(c *gin.Context) {
	h.LogRequest(c, "Creating privilege mapping")

	var req services.PrivilegeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	privilege, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "privilege mapping created", privilege)
}

func (h *PrivilegeHandler) GetAll(c *gin.Context) {
	h.LogRequest(c, "Listing privilege mappings")

	privileges, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "privilege mappings retrieved", privileges, len(privileges))
}

func (h *PrivilegeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting privilege mapping", "id", id)

	privilege, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "privileges retrieved", privilege)
}

func (h *PrivilegeHandler) GetByRole(c *gin.Context) {
	role := c.Param("role")
	h.LogRequest(c, "Getting privileges for role", "role", role)

	privilege, err := h.service.GetByRole(c.Request.Context(), role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "privileges retrieved", privilege)
}

func (h *PrivilegeHandler) Update(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating privilege mapping", "privilege_id", id)

	var req services.PrivilegeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	privilege, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "privilege mapping updated", privilege)
}

func (h *PrivilegeHandler) Delete(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting privilege mapping", "privilege_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "privilege mapping deleted", nil)
}

// CheckPrivilege answers whether a role holds a specific privilege.
func (h *PrivilegeHandler) CheckPrivilege(c *gin.Context) {
	role := c.Param("role")
	privilege := c.Param("privilege")
	h.LogRequest(c, "Checking privilege", "role", role, "privilege", privilege)

	result, err := h.service.CheckPrivilege(c.Request.Context(), role, privilege)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "privilege checked", result)
}

func (h *PrivilegeHandler) GetAvailablePrivileges(c *gin.Context) {
	h.LogRequest(c, "Listing available privileges")

	privileges := h.service.GetAvailablePrivileges(c.Request.Context())
	h.respondList(c, "available privileges retrieved", privileges, len(privileges))
}
