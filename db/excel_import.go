package db

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"campus-intranet-go/models"
)

// ErrProgramNotFound is returned when an import targets an unknown program.
var ErrProgramNotFound = errors.New("program not found")

// ImportResult summarises a spreadsheet import.
type ImportResult struct {
	Imported int      `json:"importedCount"`
	Skipped  []string `json:"skipped"`
}

// ImportStudentsFromExcel reads students from the first sheet of an Excel
// workbook and enrols them in programID. Row 1 is a header; columns are
// matricule, first name, last name, email, level. Rows missing a matricule or
// a name, and rows whose matricule is already registered, are skipped.
func (s *Store) ImportStudentsFromExcel(file io.Reader, programID string) (ImportResult, error) {
	result := ImportResult{Skipped: []string{}}

	program, ok := s.Program(programID)
	if !ok {
		return result, fmt.Errorf("%w: %s", ErrProgramNotFound, programID)
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		s.logger.Error("failed to open excel reader", "error", err)
		return result, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close excel file", "error", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return result, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return result, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	registered := time.Now().Format(time.DateOnly)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		student := models.Student{
			Matricule:        cell(0),
			FirstName:        cell(1),
			LastName:         cell(2),
			Email:            cell(3),
			Level:            cell(4),
			DepartmentID:     program.DepartmentID,
			ProgramID:        program.ID,
			Status:           models.StudentActive,
			RegistrationDate: registered,
		}
		if student.Matricule == "" || student.FirstName == "" || student.LastName == "" {
			s.logger.Debug("skipping incomplete row", "row", i+1)
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: missing matricule or name", i+1))
			continue
		}

		if _, err := s.addStudent(student); err != nil {
			s.logger.Warn("skipping student during import", "row", i+1, "matricule", student.Matricule, "error", err)
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %s: %v", i+1, student.Matricule, err))
			continue
		}
		result.Imported++
	}

	s.logger.Info("students imported", "program_id", programID, "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}
