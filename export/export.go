// Package export turns a student's grades and schedule into downloadable
// documents: a JSON bundle, a plain-text bulletin and an Excel transcript.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"campus-intranet-go/models"
)

// Option selects one document of an export.
type Option string

const (
	OptionS1       Option = "S1"
	OptionS2       Option = "S2"
	OptionSchedule Option = "schedule"
)

// Document types and statuses as they appear in the bundle.
const (
	TypeTranscript = "RELEVE_NOTES"
	TypeSchedule   = "EMPLOI_DU_TEMPS"

	StatusOfficial    = "OFFICIEL"
	StatusProvisional = "PROVISOIRE"
)

// ErrNothingSelected is returned when an export has no option selected.
var ErrNothingSelected = errors.New("no document selected for export")

// ParseOptions parses a comma separated option list, ignoring blanks and
// duplicates. Unknown options are an error.
func ParseOptions(raw string) ([]Option, error) {
	var out []Option
	seen := map[Option]bool{}
	for _, part := range strings.Split(raw, ",") {
		opt := Option(strings.TrimSpace(part))
		if opt == "" || seen[opt] {
			continue
		}
		switch opt {
		case OptionS1, OptionS2, OptionSchedule:
		default:
			return nil, fmt.Errorf("unknown export option %q", opt)
		}
		seen[opt] = true
		out = append(out, opt)
	}
	return out, nil
}

// Request describes what to export for whom.
type Request struct {
	User       *models.User
	Options    []Option
	University string
	Grades     map[models.Semester]models.GradeSheet
	Schedule   []models.ScheduleDay
	Now        time.Time
}

func (r Request) has(opt Option) bool {
	for _, o := range r.Options {
		if o == opt {
			return true
		}
	}
	return false
}

func (r Request) studentName() string {
	if r.User != nil && r.User.FullName != "" {
		return r.User.FullName
	}
	return "Etudiant"
}

func (r Request) matricule() string {
	if r.User != nil && r.User.Matricule != "" {
		return r.User.Matricule
	}
	return "N/A"
}

// Meta identifies the student and the moment of an export.
type Meta struct {
	ExportDate string `json:"exportDate"`
	Student    string `json:"student"`
	Matricule  string `json:"matricule"`
	University string `json:"university"`
}

// Document is one entry of an export bundle.
type Document struct {
	Type     string               `json:"type"`
	Semester models.Semester      `json:"semester,omitempty"`
	Year     string               `json:"year,omitempty"`
	Period   models.Semester      `json:"period,omitempty"`
	Status   string               `json:"status,omitempty"`
	Average  *float64             `json:"average,omitempty"`
	Grades   models.GradeSheet    `json:"grades,omitempty"`
	Schedule []models.ScheduleDay `json:"schedule,omitempty"`
}

// Bundle is the JSON export of a student's documents.
type Bundle struct {
	Meta      Meta       `json:"meta"`
	Documents []Document `json:"documents"`
}

// AcademicYear returns the academic year containing t, such as "2024-2025".
// A year starts in September.
func AcademicYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.September {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}

// BuildBundle assembles the selected documents. The first semester transcript
// is official and the second provisional.
func BuildBundle(req Request) (Bundle, error) {
	if len(req.Options) == 0 {
		return Bundle{}, ErrNothingSelected
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	bundle := Bundle{
		Meta: Meta{
			ExportDate: now.UTC().Format(time.RFC3339),
			Student:    req.studentName(),
			Matricule:  req.matricule(),
			University: req.University,
		},
		Documents: []Document{},
	}
	year := AcademicYear(now)

	transcript := func(sem models.Semester, status string) Document {
		sheet := req.Grades[sem]
		avg := sheet.Average()
		return Document{
			Type:     TypeTranscript,
			Semester: sem,
			Year:     year,
			Status:   status,
			Average:  &avg,
			Grades:   sheet,
		}
	}
	if req.has(OptionS1) {
		bundle.Documents = append(bundle.Documents, transcript(models.SemesterS1, StatusOfficial))
	}
	if req.has(OptionS2) {
		bundle.Documents = append(bundle.Documents, transcript(models.SemesterS2, StatusProvisional))
	}
	if req.has(OptionSchedule) {
		bundle.Documents = append(bundle.Documents, Document{
			Type:     TypeSchedule,
			Period:   models.SemesterS2,
			Schedule: req.Schedule,
		})
	}
	return bundle, nil
}

// Filename names an export file after the matricule and the selected
// semesters, e.g. documents-2025-GL-001-S1-S2.json.
func Filename(req Request, ext string) string {
	name := "documents-student"
	if req.User != nil && req.User.Matricule != "" {
		name = "documents-" + req.User.Matricule
	}
	s1, s2 := req.has(OptionS1), req.has(OptionS2)
	switch {
	case s1 && s2:
		name += "-S1-S2"
	case s1:
		name += "-S1"
	case s2:
		name += "-S2"
	}
	return name + "." + ext
}

// WriteJSON writes the bundle as indented JSON.
func WriteJSON(w io.Writer, bundle Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		return fmt.Errorf("encode export bundle: %w", err)
	}
	return nil
}

// Bulletin renders the plain-text bulletin of one semester.
func Bulletin(user *models.User, semester models.Semester, sheet models.GradeSheet) string {
	req := Request{User: user}
	var b strings.Builder
	fmt.Fprintf(&b, "BULLETIN OFFICIEL - SEMESTRE %s\n\n", semester)
	fmt.Fprintf(&b, "Étudiant: %s\n", req.studentName())
	fmt.Fprintf(&b, "Matricule: %s\n", req.matricule())
	fmt.Fprintf(&b, "Moyenne Générale: %.2f/20\n", sheet.Average())
	if len(sheet) > 0 {
		b.WriteString("\n")
		for _, g := range sheet {
			fmt.Fprintf(&b, "%-10s %-30s %5.2f/20  coef %g  (moyenne classe %.2f)\n", g.Code, g.Subject, g.Value, g.Coef, g.Average)
		}
	}
	return b.String()
}

// BulletinFilename names the bulletin file of a semester.
func BulletinFilename(user *models.User, semester models.Semester) string {
	matricule := "student"
	if user != nil && user.Matricule != "" {
		matricule = user.Matricule
	}
	return fmt.Sprintf("bulletin-%s-%s.txt", matricule, semester)
}

var (
	gradeHeader    = []any{"Code", "Matière", "Note", "Coef", "Moyenne classe"}
	scheduleHeader = []any{"Jour", "Date", "Cours", "Type", "Début", "Fin", "Salle", "Enseignant"}
)

// WriteWorkbook writes the selected documents as an Excel transcript: one
// sheet per semester and one for the schedule.
func WriteWorkbook(w io.Writer, req Request) error {
	if len(req.Options) == 0 {
		return ErrNothingSelected
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName(defaultSheet, name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	for _, sem := range []models.Semester{models.SemesterS1, models.SemesterS2} {
		if !req.has(Option(sem)) {
			continue
		}
		sheet := req.Grades[sem]
		if err := addSheet(string(sem)); err != nil {
			return fmt.Errorf("create sheet %s: %w", sem, err)
		}
		rows := [][]any{
			{"Étudiant", req.studentName()},
			{"Matricule", req.matricule()},
			{},
			gradeHeader,
		}
		for _, g := range sheet {
			rows = append(rows, []any{g.Code, g.Subject, g.Value, g.Coef, g.Average})
		}
		rows = append(rows, []any{}, []any{"Moyenne", "", sheet.Average()})
		if err := writeRows(f, string(sem), rows); err != nil {
			return err
		}
	}

	if req.has(OptionSchedule) {
		const name = "Emploi du temps"
		if err := addSheet(name); err != nil {
			return fmt.Errorf("create schedule sheet: %w", err)
		}
		rows := [][]any{scheduleHeader}
		for _, day := range req.Schedule {
			for _, c := range day.Courses {
				rows = append(rows, []any{day.Day, day.FullDate, c.Title, string(c.Type), c.StartTime, c.EndTime, c.Room, c.Professor})
			}
		}
		if err := writeRows(f, name, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
