package db

import (
	"campus-intranet-go/models"
)

// SeedData is the full content of a freshly started store.
type SeedData struct {
	Departments   []models.Department
	Programs      []models.Program
	Teachers      []models.Teacher
	Students      []models.Student
	Courses       []models.Course
	Payments      []models.Payment
	Absences      []models.Absence
	Announcements []models.Announcement
	Notifications []models.AppNotification
	Grades        map[models.Semester]models.GradeSheet
	Schedule      []models.ScheduleDay
}

// Load replaces every collection with a copy of seed and clears the session.
func (s *Store) Load(seed SeedData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.departments = clone(seed.Departments)
	s.programs = clone(seed.Programs)
	s.teachers = clone(seed.Teachers)
	s.students = clone(seed.Students)
	s.courses = clone(seed.Courses)
	s.payments = clone(seed.Payments)
	s.absences = clone(seed.Absences)
	s.announcements = clone(seed.Announcements)
	s.notifications = clone(seed.Notifications)
	s.grades = make(map[models.Semester]models.GradeSheet, len(seed.Grades))
	for sem, sheet := range seed.Grades {
		s.grades[sem] = clone(sheet)
	}
	s.schedule = make([]models.ScheduleDay, len(seed.Schedule))
	for i, day := range seed.Schedule {
		day.Courses = clone(day.Courses)
		s.schedule[i] = day
	}
	s.user = nil

	s.logger.Info("store seeded",
		"departments", len(s.departments),
		"programs", len(s.programs),
		"teachers", len(s.teachers),
		"students", len(s.students),
		"courses", len(s.courses),
	)
}

// IsEmpty reports whether the store holds no departments and no students.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.departments) == 0 && len(s.students) == 0
}

// DefaultSeed returns the demo campus loaded at startup.
func DefaultSeed() SeedData {
	return SeedData{
		Departments: []models.Department{
			{ID: "d1", Name: "Informatique & Numérique", Description: "Développement, Réseaux et IA", HeadOfDepartmentID: "t1"},
			{ID: "d2", Name: "Droit & Sciences Po", Description: "Juridique et politique", HeadOfDepartmentID: "t2"},
			{ID: "d3", Name: "Gestion & Commerce", Description: "Marketing, Finance et Management"},
		},
		Programs: []models.Program{
			{ID: "p1", Name: "Génie Logiciel", DepartmentID: "d1", DurationYears: 5, TuitionFee: 4500},
			{ID: "p2", Name: "Cybersécurité", DepartmentID: "d1", DurationYears: 3, TuitionFee: 5000},
			{ID: "p3", Name: "Droit des Affaires", DepartmentID: "d2", DurationYears: 4, TuitionFee: 3000},
		},
		Teachers: []models.Teacher{
			{ID: "t1", FirstName: "Alan", LastName: "Turing", Email: "alan.t@univ.com", Phone: "0600000001", Specialty: "Algorithmique", DepartmentID: "d1", AvatarURL: avatarFor("Alan", "Turing"), JoinDate: "2020-09-01"},
			{ID: "t2", FirstName: "Simone", LastName: "Veil", Email: "simone.v@univ.com", Phone: "0600000002", Specialty: "Droit Constitutionnel", DepartmentID: "d2", AvatarURL: avatarFor("Simone", "Veil"), JoinDate: "2019-09-01"},
			{ID: "t3", FirstName: "Ada", LastName: "Lovelace", Email: "ada.l@univ.com", Phone: "0600000003", Specialty: "Programmation", DepartmentID: "d1", AvatarURL: avatarFor("Ada", "Lovelace"), JoinDate: "2021-09-01"},
		},
		Students: []models.Student{
			{
				ID: "s1", Matricule: "2025-GL-001", FirstName: "Alexandre", LastName: "Dupont",
				Email: "alex@student.com", Phone: "0700000001", Address: "12 Rue de la Paix",
				BirthDate: "2001-05-15", Gender: "M",
				AvatarURL:    "https://images.unsplash.com/photo-1599566150163-29194dcaad36?w=200&h=200&fit=crop",
				DepartmentID: "d1", ProgramID: "p1", Level: "M1", Status: models.StudentActive,
				RegistrationDate: "2024-09-01", GPA: 16.5, IsClassRep: true,
			},
			{
				ID: "s2", Matricule: "2025-DA-042", FirstName: "Sarah", LastName: "Lambert",
				Email: "sarah@student.com", Phone: "0700000002", Address: "5 Avenue Foch",
				BirthDate: "2002-08-22", Gender: "F",
				AvatarURL:    "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200&h=200&fit=crop",
				DepartmentID: "d2", ProgramID: "p3", Level: "L3", Status: models.StudentActive,
				RegistrationDate: "2024-09-01", GPA: 15.2,
			},
		},
		Courses: []models.Course{
			{ID: "c1", Title: "Algorithmique Avancée", Code: "INFO401", Credits: 4, Semester: models.SemesterS1, ProgramID: "p1", TeacherID: "t1", Day: "Lundi", StartTime: "08:30", EndTime: "10:30", Room: "Amphi A", Color: "blue"},
			{ID: "c2", Title: "Droit Civil", Code: "DRT201", Credits: 3, Semester: models.SemesterS1, ProgramID: "p3", TeacherID: "t2", Day: "Mardi", StartTime: "14:00", EndTime: "16:00", Room: "Amphi B", Color: "red"},
			{ID: "c3", Title: "Web Development", Code: "WEB305", Credits: 5, Semester: models.SemesterS1, ProgramID: "p1", TeacherID: "t3", Day: "Jeudi", StartTime: "10:00", EndTime: "13:00", Room: "Salle 204", Color: "green"},
		},
		Payments: []models.Payment{
			{ID: "pay1", StudentID: "s1", Amount: 1500, Type: models.PaymentTuition, Date: "2024-09-15", Status: models.PaymentPaid, Reference: "REF-998877"},
			{ID: "pay2", StudentID: "s1", Amount: 1500, Type: models.PaymentTuition, Date: "2025-01-15", Status: models.PaymentPending, Reference: "REF-998878"},
			{ID: "pay3", StudentID: "s2", Amount: 3000, Type: models.PaymentTuition, Date: "2024-09-10", Status: models.PaymentPaid, Reference: "REF-112233"},
		},
		Absences: []models.Absence{
			{ID: "a1", StudentID: "s1", Date: "14 Oct", CourseID: "c1", Type: models.CourseLecture, Subject: "Algorithmique Avancée", Duration: "2h", Status: models.AbsenceUnjustified},
		},
		Announcements: []models.Announcement{
			{
				ID:          "1",
				Title:       "Remise des diplômes 2024",
				Description: "La cérémonie aura lieu le 15 Juillet au grand amphithéâtre.",
				Content:     "Détails complets...",
				Date:        "15 Juil",
				Important:   true,
				Category:    "Événements",
				ImageURL:    "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=800&h=600&fit=crop",
			},
		},
		Notifications: []models.AppNotification{
			{ID: "1", Title: "Nouvelle note disponible", Message: "Votre note en Algorithmique Avancée a été publiée : 16.5/20", Date: "Il y a 10 min", Type: models.NotificationGrade},
			{ID: "2", Title: "Changement de salle", Message: "Le cours de Droit du Numérique de 14h aura lieu en Salle 204.", Date: "Il y a 1h", Type: models.NotificationCalendar},
		},
		Grades: map[models.Semester]models.GradeSheet{
			models.SemesterS1: {
				{Subject: "Algorithmique Avancée", Code: "INFO-401", Value: 16.5, Coef: 4, Average: 12},
				{Subject: "Bases de Données", Code: "INFO-402", Value: 14.0, Coef: 3, Average: 11.5},
				{Subject: "Droit du Numérique", Code: "DRT-202", Value: 12.5, Coef: 2, Average: 13},
				{Subject: "Anglais Technique", Code: "LNG-101", Value: 18.0, Coef: 2, Average: 14},
				{Subject: "Gestion de Projet", Code: "MGT-301", Value: 15.0, Coef: 3, Average: 13.5},
			},
			models.SemesterS2: {
				{Subject: "Architecture Logicielle", Code: "INFO-405", Value: 15.0, Coef: 4, Average: 11},
				{Subject: "Intelligence Artificielle", Code: "INFO-410", Value: 17.5, Coef: 4, Average: 12.5},
				{Subject: "Sécurité Réseaux", Code: "SEC-305", Value: 13.0, Coef: 3, Average: 10.5},
			},
		},
		Schedule: []models.ScheduleDay{
			{Date: "14", Day: "LUN", FullDate: "Lundi 14 Octobre", Courses: []models.ScheduleCourse{
				{ID: "1", Title: "Algorithmique", Type: models.CourseLecture, StartTime: "08:30", EndTime: "10:30", Room: "Amphi A", Professor: "A. Turing"},
				{ID: "2", Title: "Algorithmique", Type: models.CourseTutorial, StartTime: "10:45", EndTime: "12:45", Room: "Salle 204", Professor: "A. Turing"},
			}},
			{Date: "15", Day: "MAR", FullDate: "Mardi 15 Octobre", Courses: []models.ScheduleCourse{
				{ID: "3", Title: "Anglais", Type: models.CourseTutorial, StartTime: "14:00", EndTime: "16:00", Room: "Labo Langues", Professor: "J. Smith"},
			}},
			{Date: "16", Day: "MER", FullDate: "Mercredi 16 Octobre", Courses: []models.ScheduleCourse{}},
			{Date: "17", Day: "JEU", FullDate: "Jeudi 17 Octobre", Courses: []models.ScheduleCourse{
				{ID: "4", Title: "Base de Données", Type: models.CourseLecture, StartTime: "09:00", EndTime: "12:00", Room: "Amphi B", Professor: "E. Codd"},
				{ID: "5", Title: "Projet Web", Type: models.CoursePractice, StartTime: "13:30", EndTime: "17:30", Room: "Salle Info 3", Professor: "T. Berners-Lee"},
			}},
			{Date: "18", Day: "VEN", FullDate: "Vendredi 18 Octobre", Courses: []models.ScheduleCourse{
				{ID: "6", Title: "Droit Numérique", Type: models.CourseLecture, StartTime: "10:00", EndTime: "12:00", Room: "Amphi C", Professor: "L. Lessig"},
			}},
		},
	}
}
