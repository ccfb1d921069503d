package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

type exportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// ExportAttendance renders the register for a date range as a two-sheet
// workbook: the raw records and the per-day aggregates.
func (s *exportService) ExportAttendance(ctx context.Context, startDate, endDate string) ([]byte, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	s.logger.Info("Exporting attendance register", "start_date", startDate, "end_date", endDate)

	records, err := s.repo.Attendance().GetByDateRange(ctx, nil, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read records for export: %w", err)
	}

	summary, err := s.repo.Attendance().GetSummary(ctx, nil, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const recordsSheet = "Attendance"
	f.SetSheetName("Sheet1", recordsSheet)

	headers := []string{"Date", "Student ID", "Student Name", "Class", "Present", "Time", "Marked By"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(recordsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for row, rec := range records {
		present := "Absent"
		if rec.Present {
			present = "Present"
		}
		values := []interface{}{
			rec.Date,
			rec.StudentID,
			rec.StudentName,
			rec.ClassID,
			present,
			rec.AttendanceTime,
			rec.MarkedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(recordsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	const summarySheet = "Daily Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	summaryHeaders := []string{"Date", "Total Students", "Present", "Attendance Rate (%)"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write summary header: %w", err)
		}
	}

	row := 2
	for _, day := range summary.Daily {
		values := []interface{}{day.Date, day.TotalStudents, day.PresentCount, day.AttendanceRate}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write summary row: %w", err)
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buf.Bytes(), nil
}
