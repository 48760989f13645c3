package models

// Role is the role carried by a session user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// StudentStatus is the enrolment status of a student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentAlumni    StudentStatus = "ALUMNI"
	StudentSuspended StudentStatus = "SUSPENDED"
)

// Semester identifies one half of the academic year.
type Semester string

const (
	SemesterS1 Semester = "S1"
	SemesterS2 Semester = "S2"
)

// CourseType is the teaching format of a course session.
type CourseType string

const (
	CourseLecture  CourseType = "CM"
	CourseTutorial CourseType = "TD"
	CoursePractice CourseType = "TP"
	CourseExam     CourseType = "EXAMEN"
)

// PaymentType classifies a payment.
type PaymentType string

const (
	PaymentTuition      PaymentType = "TUITION"
	PaymentRegistration PaymentType = "REGISTRATION"
	PaymentLibrary      PaymentType = "LIBRARY"
	PaymentOther        PaymentType = "OTHER"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// AbsenceStatus is the justification state of an absence.
type AbsenceStatus string

const (
	AbsenceUnjustified AbsenceStatus = "UNJUSTIFIED"
	AbsencePending     AbsenceStatus = "PENDING"
	AbsenceJustified   AbsenceStatus = "JUSTIFIED"
)

// NotificationType classifies an in-app notification.
type NotificationType string

const (
	NotificationGrade    NotificationType = "GRADE"
	NotificationAdmin    NotificationType = "ADMIN"
	NotificationEvent    NotificationType = "EVENT"
	NotificationChat     NotificationType = "CHAT"
	NotificationCalendar NotificationType = "CALENDAR"
)

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is the UI language preference.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageGerman  Language = "de"
)

// User is the session identity of whoever is logged in. It is derived from a
// Student (or synthesised for the administrator) and never stored as such.
type User struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"` // matricule for students
	FullName        string  `json:"fullName"`
	AvatarURL       string  `json:"avatarUrl"`
	Role            Role    `json:"role"`
	LinkedStudentID string  `json:"linkedStudentId,omitempty"`
	Matricule       string  `json:"matricule,omitempty"`
	FirstName       string  `json:"firstName,omitempty"`
	LastName        string  `json:"lastName,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	GPA             float64 `json:"gpa,omitempty"`
	Rank            int     `json:"rank,omitempty"`
	Level           string  `json:"level,omitempty"`
	Major           string  `json:"major,omitempty"`
	IsClassRep      bool    `json:"isClassRep"`
}

// UserPatch carries the session fields a user may edit. Nil fields are left
// untouched.
type UserPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	FullName  *string `json:"fullName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Department groups programs and teachers.
type Department struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	HeadOfDepartmentID string `json:"headOfDepartmentId,omitempty"` // Teacher ID
}

// Program is an academic track (filière) inside a department.
type Program struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DepartmentID  string  `json:"departmentId"`
	DurationYears int     `json:"durationYears"`
	TuitionFee    float64 `json:"tuitionFee"` // yearly
}

// Teacher belongs to one department.
type Teacher struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Specialty    string `json:"specialty"`
	DepartmentID string `json:"departmentId"`
	AvatarURL    string `json:"avatarUrl"`
	JoinDate     string `json:"joinDate"`
}

// Student is the academic record of an enrolled student.
type Student struct {
	ID               string        `json:"id"`
	Matricule        string        `json:"matricule"`
	FirstName        string        `json:"firstName"`
	LastName         string        `json:"lastName"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	Address          string        `json:"address"`
	BirthDate        string        `json:"birthDate"`
	Gender           string        `json:"gender"` // M or F
	AvatarURL        string        `json:"avatarUrl"`
	DepartmentID     string        `json:"departmentId"`
	ProgramID        string        `json:"programId"`
	Level            string        `json:"level"` // L1, L2, M1...
	Status           StudentStatus `json:"status"`
	RegistrationDate string        `json:"registrationDate"`
	GPA              float64       `json:"gpa"` // 0-20
	IsClassRep       bool          `json:"isClassRep"`
}

// StudentPatch carries a partial student update. Nil fields are left untouched.
type StudentPatch struct {
	Matricule        *string        `json:"matricule,omitempty"`
	FirstName        *string        `json:"firstName,omitempty"`
	LastName         *string        `json:"lastName,omitempty"`
	Email            *string        `json:"email,omitempty"`
	Phone            *string        `json:"phone,omitempty"`
	Address          *string        `json:"address,omitempty"`
	BirthDate        *string        `json:"birthDate,omitempty"`
	Gender           *string        `json:"gender,omitempty"`
	AvatarURL        *string        `json:"avatarUrl,omitempty"`
	DepartmentID     *string        `json:"departmentId,omitempty"`
	ProgramID        *string        `json:"programId,omitempty"`
	Level            *string        `json:"level,omitempty"`
	Status           *StudentStatus `json:"status,omitempty"`
	RegistrationDate *string        `json:"registrationDate,omitempty"`
	GPA              *float64       `json:"gpa,omitempty"`
	IsClassRep       *bool          `json:"isClassRep,omitempty"`
}

// Course is a teaching unit of a program. The schedule fields are optional.
type Course struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Code      string   `json:"code"`
	Credits   int      `json:"credits"`
	Semester  Semester `json:"semester"`
	ProgramID string   `json:"programId"`
	TeacherID string   `json:"teacherId"`
	Day       string   `json:"day,omitempty"`
	StartTime string   `json:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty"`
	Room      string   `json:"room,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// Payment is a single student payment.
type Payment struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	Amount    float64       `json:"amount"`
	Type      PaymentType   `json:"type"`
	Date      string        `json:"date"`
	Status    PaymentStatus `json:"status"`
	Reference string        `json:"reference"`
}

// Absence records a missed course session.
type Absence struct {
	ID               string        `json:"id"`
	StudentID        string        `json:"studentId"`
	Date             string        `json:"date"`
	CourseID         string        `json:"courseId"`
	Type             CourseType    `json:"type"`
	Subject          string        `json:"subject,omitempty"`
	Duration         string        `json:"duration"` // e.g. "2h", "1h30"
	Status           AbsenceStatus `json:"status"`
	JustificationURL string        `json:"justificationUrl,omitempty"`
}

// Announcement is a campus-wide news item.
type Announcement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	Important   bool   `json:"important"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AppNotification is an in-app notification for the session user.
type AppNotification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Date    string           `json:"date"`
	Type    NotificationType `json:"type"`
	Read    bool             `json:"read"`
}
