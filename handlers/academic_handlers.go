package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"campus-intranet-go/db"
	"campus-intranet-go/export"
	"campus-intranet-go/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// --- Absence Handlers ---

// GetAbsences handles GET /api/absences. Without ?studentId= a student session
// sees its own absences and everyone else sees all of them.
func (h *APIHandler) GetAbsences(c *gin.Context) {
	studentID := c.Query("studentId")
	if studentID == "" {
		if user, ok := h.Store.CurrentUser(); ok && user.Role == models.RoleStudent && user.LinkedStudentID != "" {
			studentID = user.LinkedStudentID
		}
	}
	if studentID != "" {
		list(c, h.Store.AbsencesOf(studentID))
		return
	}
	list(c, h.Store.Absences())
}

// UpdateAbsenceStatus handles PATCH /api/absences/:id/status. Approving a
// pending absence (PENDING -> JUSTIFIED) needs an admin session, as does
// "override", which skips the transition check.
func (h *APIHandler) UpdateAbsenceStatus(c *gin.Context) {
	var req absenceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	current, ok := h.Store.Absence(id)
	if !ok {
		notFound(c, "Absence")
		return
	}

	approval := current.Status == models.AbsencePending && req.Status == models.AbsenceJustified
	if approval && !h.isAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Approving a justification requires an administrator session"})
		return
	}

	if req.Override {
		if !h.isAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Override requires an administrator session"})
			return
		}
		h.Store.OverrideAbsenceStatus(id, req.Status)
	} else if err := h.Store.UpdateAbsenceStatus(id, req.Status); err != nil {
		if errors.Is(err, db.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("update absence status", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update absence"})
		return
	}

	a, _ := h.Store.Absence(id)
	c.JSON(http.StatusOK, a)
}

// SubmitJustification handles POST /api/absences/:id/justification
func (h *APIHandler) SubmitJustification(c *gin.Context) {
	var req justificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, ok, err := h.Store.SubmitJustification(c.Param("id"), req.DocumentURL)
	switch {
	case !ok:
		notFound(c, "Absence")
	case errors.Is(err, db.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		h.Logger.Error("submit justification", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit justification"})
	default:
		c.JSON(http.StatusOK, a)
	}
}

// GetAttendance handles GET /api/students/:id/attendance?totalHours=.
// totalHours defaults to db.DefaultTeachingHours.
func (h *APIHandler) GetAttendance(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Store.Student(id); !ok {
		notFound(c, "Student")
		return
	}
	totalHours := float64(db.DefaultTeachingHours)
	if raw := c.Query("totalHours"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "totalHours must be a non-negative number"})
			return
		}
		totalHours = v
	}
	absences := h.Store.AbsencesOf(id)
	c.JSON(http.StatusOK, gin.H{
		"studentId":      id,
		"absences":       len(absences),
		"missedHours":    db.MissedHours(absences),
		"attendanceRate": db.AttendanceRate(totalHours, absences),
	})
}

// --- Grades & Schedule ---

func parseSemester(c *gin.Context) (models.Semester, bool) {
	sem := models.Semester(c.Param("semester"))
	if sem != models.SemesterS1 && sem != models.SemesterS2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semester must be S1 or S2"})
		return "", false
	}
	return sem, true
}

// GetGrades handles GET /api/grades/:semester
func (h *APIHandler) GetGrades(c *gin.Context) {
	sem, ok := parseSemester(c)
	if !ok {
		return
	}
	sheet := h.Store.Grades(sem)
	if sheet == nil {
		sheet = models.GradeSheet{}
	}
	c.JSON(http.StatusOK, gin.H{
		"semester": sem,
		"grades":   sheet,
		"average":  sheet.Average(),
	})
}

// GetBulletin handles GET /api/grades/:semester/bulletin
func (h *APIHandler) GetBulletin(c *gin.Context) {
	sem, ok := parseSemester(c)
	if !ok {
		return
	}
	user := h.sessionUser()
	c.Header("Content-Disposition", `attachment; filename="`+export.BulletinFilename(user, sem)+`"`)
	c.String(http.StatusOK, export.Bulletin(user, sem, h.Store.Grades(sem)))
}

// GetSchedule handles GET /api/schedule
func (h *APIHandler) GetSchedule(c *gin.Context) {
	list(c, h.Store.Schedule())
}

func (h *APIHandler) sessionUser() *models.User {
	if user, ok := h.Store.CurrentUser(); ok {
		return &user
	}
	return nil
}

// --- Export & Import ---

// Export handles GET /api/export?include=S1,S2,schedule&format=json|xlsx
func (h *APIHandler) Export(c *gin.Context) {
	opts, err := export.ParseOptions(c.Query("include"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req := export.Request{
		User:       h.sessionUser(),
		Options:    opts,
		University: h.University,
		Grades: map[models.Semester]models.GradeSheet{
			models.SemesterS1: h.Store.Grades(models.SemesterS1),
			models.SemesterS2: h.Store.Grades(models.SemesterS2),
		},
		Schedule: h.Store.Schedule(),
		Now:      time.Now(),
	}

	var (
		buf         bytes.Buffer
		contentType string
		filename    string
	)
	switch c.DefaultQuery("format", "json") {
	case "json":
		bundle, err := export.BuildBundle(req)
		if err == nil {
			err = export.WriteJSON(&buf, bundle)
		}
		if h.exportFailed(c, err) {
			return
		}
		contentType, filename = "application/json", export.Filename(req, "json")
	case "xlsx":
		if h.exportFailed(c, export.WriteWorkbook(&buf, req)) {
			return
		}
		contentType, filename = xlsxContentType, export.Filename(req, "xlsx")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or xlsx"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *APIHandler) exportFailed(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, export.ErrNothingSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("export documents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export documents"})
	}
	return true
}

// ImportStudents handles POST /api/import/students
func (h *APIHandler) ImportStudents(c *gin.Context) {
	programID := c.PostForm("programId")
	if programID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'programId' in form data"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	h.Logger.Info("student import received", "file", header.Filename, "program_id", programID)

	result, err := h.Store.ImportStudentsFromExcel(file, programID)
	if err != nil {
		if errors.Is(err, db.ErrProgramNotFound) {
			notFound(c, "Program")
			return
		}
		h.Logger.Error("import students", "file", header.Filename, "program_id", programID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to import students: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": result.Imported,
		"skipped":       result.Skipped,
		"programId":     programID,
	})
}
