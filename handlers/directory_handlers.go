package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-intranet-go/db"
	"campus-intranet-go/models"
)

// --- Department Handlers ---

// GetDepartments handles GET /api/departments
func (h *APIHandler) GetDepartments(c *gin.Context) {
	list(c, h.Store.Departments())
}

// GetDepartment handles GET /api/departments/:id
func (h *APIHandler) GetDepartment(c *gin.Context) {
	view, ok := h.Store.DepartmentView(c.Param("id"))
	if !ok {
		notFound(c, "Department")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddDepartment handles POST /api/departments
func (h *APIHandler) AddDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.Store.AddDepartment(models.Department{
		Name:               req.Name,
		Description:        req.Description,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
	})
	d, _ := h.Store.Department(id)
	c.JSON(http.StatusCreated, d)
}

// --- Program Handlers ---

// GetPrograms handles GET /api/programs, optionally filtered by ?departmentId=.
func (h *APIHandler) GetPrograms(c *gin.Context) {
	if deptID := c.Query("departmentId"); deptID != "" {
		list(c, h.Store.ProgramsInDepartment(deptID))
		return
	}
	list(c, h.Store.Programs())
}

// GetProgram handles GET /api/programs/:id
func (h *APIHandler) GetProgram(c *gin.Context) {
	view, ok := h.Store.ProgramView(c.Param("id"))
	if !ok {
		notFound(c, "Program")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddProgram handles POST /api/programs
func (h *APIHandler) AddProgram(c *gin.Context) {
	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.Store.AddProgram(models.Program{
		Name:          req.Name,
		DepartmentID:  req.DepartmentID,
		DurationYears: req.DurationYears,
		TuitionFee:    req.TuitionFee,
	})
	p, _ := h.Store.Program(id)
	c.JSON(http.StatusCreated, p)
}

// --- Teacher Handlers ---

// GetTeachers handles GET /api/teachers
func (h *APIHandler) GetTeachers(c *gin.Context) {
	list(c, h.Store.TeacherViews())
}

// AddTeacher handles POST /api/teachers
func (h *APIHandler) AddTeacher(c *gin.Context) {
	var req teacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.Store.AddTeacher(models.Teacher{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Specialty:    req.Specialty,
		DepartmentID: req.DepartmentID,
		JoinDate:     req.JoinDate,
	})
	t, _ := h.Store.Teacher(id)
	c.JSON(http.StatusCreated, t)
}

// --- Student Handlers ---

// GetStudents handles GET /api/students. ?q= searches by name or matricule.
func (h *APIHandler) GetStudents(c *gin.Context) {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		list(c, h.Store.SearchStudents(q))
		return
	}
	list(c, h.Store.Students())
}

// GetStudent handles GET /api/students/:id
func (h *APIHandler) GetStudent(c *gin.Context) {
	view, ok := h.Store.StudentView(c.Param("id"))
	if !ok {
		notFound(c, "Student")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddStudent handles POST /api/students
func (h *APIHandler) AddStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.Store.AddStudent(req.student())
	if err != nil {
		if errors.Is(err, db.ErrDuplicateMatricule) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("add student", "matricule", req.Matricule, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add student"})
		return
	}
	st, _ := h.Store.Student(id)
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent handles PATCH /api/students/:id
func (h *APIHandler) UpdateStudent(c *gin.Context) {
	var req studentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, ok, err := h.Store.UpdateStudent(c.Param("id"), req.patch())
	switch {
	case !ok:
		notFound(c, "Student")
	case errors.Is(err, db.ErrDuplicateMatricule):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		h.Logger.Error("update student", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
	default:
		c.JSON(http.StatusOK, st)
	}
}

// --- Course Handlers ---

// GetCourses handles GET /api/courses
func (h *APIHandler) GetCourses(c *gin.Context) {
	list(c, h.Store.CourseViews())
}

// GetCourse handles GET /api/courses/:id
func (h *APIHandler) GetCourse(c *gin.Context) {
	view, ok := h.Store.CourseView(c.Param("id"))
	if !ok {
		notFound(c, "Course")
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddCourse handles POST /api/courses
func (h *APIHandler) AddCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.Store.AddCourse(req.course())
	course, _ := h.Store.Course(id)
	c.JSON(http.StatusCreated, course)
}

// --- Payment Handlers ---

// GetPayments handles GET /api/payments, optionally filtered by ?studentId=.
func (h *APIHandler) GetPayments(c *gin.Context) {
	payments := h.Store.Payments()
	if studentID := c.Query("studentId"); studentID != "" {
		filtered := make([]models.Payment, 0, len(payments))
		for _, p := range payments {
			if p.StudentID == studentID {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	list(c, payments)
}

// AddPayment handles POST /api/payments
func (h *APIHandler) AddPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.Store.AddPayment(models.Payment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Type:      req.Type,
		Date:      req.Date,
		Status:    req.Status,
		Reference: req.Reference,
	})
	p, _ := h.Store.Payment(id)
	c.JSON(http.StatusCreated, p)
}

// UpdatePaymentStatus handles PATCH /api/payments/:id/status
func (h *APIHandler) UpdatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if !h.Store.UpdatePaymentStatus(id, req.Status) {
		notFound(c, "Payment")
		return
	}
	p, _ := h.Store.Payment(id)
	c.JSON(http.StatusOK, p)
}

// --- Announcement Handlers ---

// GetAnnouncements handles GET /api/announcements
func (h *APIHandler) GetAnnouncements(c *gin.Context) {
	list(c, h.Store.Announcements())
}

// AddAnnouncement handles POST /api/announcements
func (h *APIHandler) AddAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a := models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Date:        req.Date,
		Important:   req.Important,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	a.ID = h.Store.AddAnnouncement(a)
	c.JSON(http.StatusCreated, a)
}
