package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the intranet API on r, usually the /api group.
func (h *APIHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ping", PingHandler)

	session := r.Group("/session")
	{
		session.GET("", h.GetSession)
		session.POST("", h.Login)
		session.PATCH("", h.UpdateSession)
		session.DELETE("", h.Logout)
	}

	r.GET("/departments", h.GetDepartments)
	r.GET("/departments/:id", h.GetDepartment)
	r.POST("/departments", h.AddDepartment)
	r.DELETE("/departments/:id", h.deleteHandler("Department", h.Store.DeleteDepartment))

	r.GET("/programs", h.GetPrograms)
	r.GET("/programs/:id", h.GetProgram)
	r.POST("/programs", h.AddProgram)
	r.DELETE("/programs/:id", h.deleteHandler("Program", h.Store.DeleteProgram))

	r.GET("/teachers", h.GetTeachers)
	r.POST("/teachers", h.AddTeacher)
	r.DELETE("/teachers/:id", h.deleteHandler("Teacher", h.Store.DeleteTeacher))

	r.GET("/students", h.GetStudents)
	r.GET("/students/:id", h.GetStudent)
	r.GET("/students/:id/attendance", h.GetAttendance)
	r.POST("/students", h.AddStudent)
	r.PATCH("/students/:id", h.UpdateStudent)
	r.DELETE("/students/:id", h.deleteHandler("Student", h.Store.DeleteStudent))

	r.GET("/courses", h.GetCourses)
	r.GET("/courses/:id", h.GetCourse)
	r.POST("/courses", h.AddCourse)
	r.DELETE("/courses/:id", h.deleteHandler("Course", h.Store.DeleteCourse))

	r.GET("/payments", h.GetPayments)
	r.POST("/payments", h.AddPayment)
	r.PATCH("/payments/:id/status", h.UpdatePaymentStatus)
	r.DELETE("/payments/:id", h.deleteHandler("Payment", h.Store.DeletePayment))

	r.GET("/announcements", h.GetAnnouncements)
	r.POST("/announcements", h.AddAnnouncement)
	r.DELETE("/announcements/:id", h.deleteHandler("Announcement", h.Store.DeleteAnnouncement))

	r.GET("/absences", h.GetAbsences)
	r.PATCH("/absences/:id/status", h.UpdateAbsenceStatus)
	r.POST("/absences/:id/justification", h.SubmitJustification)

	r.GET("/notifications", h.GetNotifications)
	r.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	r.DELETE("/notifications/:id", h.deleteHandler("Notification", h.Store.DeleteNotification))

	r.GET("/preferences", h.GetPreferences)
	r.POST("/preferences/theme/toggle", h.ToggleTheme)
	r.PUT("/preferences/language", h.SetLanguage)

	r.GET("/grades/:semester", h.GetGrades)
	r.GET("/grades/:semester/bulletin", h.GetBulletin)
	r.GET("/schedule", h.GetSchedule)
	r.GET("/dashboard", h.GetDashboard)

	r.GET("/export", h.Export)
	r.POST("/import/students", h.ImportStudents)
}
