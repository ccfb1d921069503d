package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	service       services.AttendanceService
	exportService services.ExportService
}

func NewAttendanceHandler(service services.AttendanceService, exportService services.ExportService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:   NewBaseHandler(logger),
		service:       service,
		exportService: exportService,
	}
}

// ===== REGISTER WORKFLOW =====

// Save persists a full register batch. The whole batch is validated first,
// then written in one transaction; existing (student, date) rows are updated.
func (h *AttendanceHandler) Save(c *gin.Context) {
	h.LogRequest(c, "Saving attendance register")

	var records []services.AttendanceRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.service.SaveBulk(c.Request.Context(), records)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "attendance saved", result)
}

// CheckExists reports whether a teacher already marked the register for a date.
func (h *AttendanceHandler) CheckExists(c *gin.Context) {
	teacher := c.Param("teacher")
	date := c.Param("date")
	h.LogRequest(c, "Checking register", "marked_by", teacher, "date", date)

	exists, count, err := h.service.CheckExists(c.Request.Context(), teacher, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "register checked", gin.H{
		"exists": exists,
		"count":  count,
	})
}

func (h *AttendanceHandler) DeleteByTeacherDate(c *gin.Context) {
	teacher := c.Param("teacher")
	date := c.Param("date")
	h.LogRequest(c, "Deleting register", "marked_by", teacher, "date", date)

	deleted, err := h.service.DeleteByTeacherDate(c.Request.Context(), teacher, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "attendance deleted", gin.H{
		"deleted_count": deleted,
	})
}

// ===== READS =====

func (h *AttendanceHandler) GetByDate(c *gin.Context) {
	date := c.Param("date")
	class := c.Param("class")
	h.LogRequest(c, "Listing attendance by date", "date", date, "class", class)

	records, err := h.service.GetByDate(c.Request.Context(), date, class)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance retrieved", records, len(records))
}

func (h *AttendanceHandler) GetByTeacherDate(c *gin.Context) {
	teacher := c.Param("teacher")
	date := c.Param("date")
	h.LogRequest(c, "Listing attendance by teacher and date", "marked_by", teacher, "date", date)

	records, err := h.service.GetByTeacherDate(c.Request.Context(), teacher, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance retrieved", records, len(records))
}

// GetStudentHistory lists one student's rows, optionally bounded when the
// route carries start and end dates.
func (h *AttendanceHandler) GetStudentHistory(c *gin.Context) {
	studentID, ok := h.parseUintParam(c, "student_id")
	if !ok {
		return
	}
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Listing attendance by student", "student_id", studentID, "start_date", start, "end_date", end)

	records, err := h.service.GetStudentHistory(c.Request.Context(), studentID, start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance retrieved", records, len(records))
}

func (h *AttendanceHandler) GetByTeacherDateRange(c *gin.Context) {
	teacher := c.Param("teacher")
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Listing attendance by teacher and date range", "marked_by", teacher, "start_date", start, "end_date", end)

	records, err := h.service.GetByTeacherDateRange(c.Request.Context(), teacher, start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance retrieved", records, len(records))
}

func (h *AttendanceHandler) GetAllByDateRange(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Listing attendance by date range", "start_date", start, "end_date", end)

	records, err := h.service.GetAllByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance retrieved", records, len(records))
}

func (h *AttendanceHandler) GetHistory(c *gin.Context) {
	teacher := c.Param("teacher")
	h.LogRequest(c, "Listing recent attendance history", "marked_by", teacher)

	records, err := h.service.GetHistory(c.Request.Context(), teacher)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "attendance history retrieved", records, len(records))
}

func (h *AttendanceHandler) GetDates(c *gin.Context) {
	teacher := c.Param("teacher")
	h.LogRequest(c, "Listing register dates", "marked_by", teacher)

	dates, err := h.service.GetDates(c.Request.Context(), teacher)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "dates retrieved", dates, len(dates))
}

// ===== ANALYTICS =====

func (h *AttendanceHandler) GetSummary(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Getting attendance summary", "start_date", start, "end_date", end)

	summary, err := h.service.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "attendance summary retrieved", summary)
}

// GetTeacherStats reports per-date marked and present counts for one teacher.
func (h *AttendanceHandler) GetTeacherStats(c *gin.Context) {
	teacher := c.Param("teacher")
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Getting teacher attendance stats", "marked_by", teacher, "start_date", start, "end_date", end)

	stats, err := h.service.GetTeacherStats(c.Request.Context(), teacher, start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "teacher stats retrieved", stats, len(stats))
}

func (h *AttendanceHandler) GetStudentStats(c *gin.Context) {
	studentID, ok := h.parseUintParam(c, "student_id")
	if !ok {
		return
	}
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Getting student attendance stats", "student_id", studentID, "start_date", start, "end_date", end)

	stats, err := h.service.GetStudentStats(c.Request.Context(), studentID, start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "student stats retrieved", stats)
}

func (h *AttendanceHandler) GetRankings(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	h.LogRequest(c, "Getting attendance rankings", "start_date", start, "end_date", end, "limit", limit)

	rankings, err := h.service.GetRankings(c.Request.Context(), start, end, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "rankings retrieved", rankings, len(rankings))
}

func (h *AttendanceHandler) GetMonthlyTrends(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid year", nil)
		return
	}
	h.LogRequest(c, "Getting monthly attendance trends", "year", year)

	trends, err := h.service.GetMonthlyTrends(c.Request.Context(), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "monthly trends retrieved", trends, len(trends))
}

func (h *AttendanceHandler) GetClassComparison(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Getting class attendance comparison", "start_date", start, "end_date", end)

	comparison, err := h.service.GetClassComparison(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondList(c, "class comparison retrieved", comparison, len(comparison))
}

// Export streams the register for a date range as an xlsx workbook.
func (h *AttendanceHandler) Export(c *gin.Context) {
	start := c.Param("start")
	end := c.Param("end")
	h.LogRequest(c, "Exporting attendance", "start_date", start, "end_date", end)

	workbook, err := h.exportService.ExportAttendance(c.Request.Context(), start, end)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", start, end)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
