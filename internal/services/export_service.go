package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Roster"

var rosterHeaders = []string{"ID", "Name", "Email", "Roll", "Branch", "Year", "CGPA", "Attendance"}

// ===== SERVICE INTERFACE =====

type ExportService interface {
	// ExportRoster renders the teacher's roster as an XLSX workbook
	ExportRoster(ctx context.Context, teacherID, token string) ([]byte, error)
}

// ===== SERVICE IMPLEMENTATION =====

type exportService struct {
	roster RosterService
	logger *slog.Logger
}

func NewExportService(roster RosterService, logger *slog.Logger) ExportService {
	return &exportService{roster: roster, logger: logger}
}

func (s *exportService) ExportRoster(ctx context.Context, teacherID, token string) ([]byte, error) {
	roster, err := s.roster.ResolveRoster(ctx, teacherID, token)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E4E4E7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(rosterHeaders), 1)
	if err := f.SetCellStyle(rosterSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, st := range roster.Students {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{st.ID, st.Name, st.Email, st.Roll, st.Branch, st.Year, st.CGPA, st.Attendance}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(rosterSheet, "A", "C", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Roster exported", "teacher_id", teacherID, "rows", len(roster.Students))
	return buf.Bytes(), nil
}
