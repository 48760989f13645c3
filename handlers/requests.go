package handlers

import (
	"campus-intranet-go/models"
)

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type userPatchRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=64"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=64"`
	FullName  *string `json:"fullName" binding:"omitempty,min=1,max=128"`
	Bio       *string `json:"bio" binding:"omitempty,max=280"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

func (r userPatchRequest) patch() models.UserPatch {
	return models.UserPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		FullName:  r.FullName,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
	}
}

type departmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	HeadOfDepartmentID string `json:"headOfDepartmentId"`
}

type programRequest struct {
	Name          string  `json:"name" binding:"required"`
	DepartmentID  string  `json:"departmentId" binding:"required"`
	DurationYears int     `json:"durationYears" binding:"gt=0"`
	TuitionFee    float64 `json:"tuitionFee" binding:"gte=0"`
}

type teacherRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Specialty    string `json:"specialty"`
	DepartmentID string `json:"departmentId" binding:"required"`
	JoinDate     string `json:"joinDate"`
}

type studentRequest struct {
	Matricule        string               `json:"matricule" binding:"required,matricule"`
	FirstName        string               `json:"firstName" binding:"required"`
	LastName         string               `json:"lastName" binding:"required"`
	Email            string               `json:"email" binding:"omitempty,email"`
	Phone            string               `json:"phone"`
	Address          string               `json:"address"`
	BirthDate        string               `json:"birthDate"`
	Gender           string               `json:"gender" binding:"omitempty,oneof=M F"`
	DepartmentID     string               `json:"departmentId" binding:"required"`
	ProgramID        string               `json:"programId" binding:"required"`
	Level            string               `json:"level" binding:"required"`
	Status           models.StudentStatus `json:"status" binding:"omitempty,oneof=ACTIVE ALUMNI SUSPENDED"`
	RegistrationDate string               `json:"registrationDate"`
	IsClassRep       bool                 `json:"isClassRep"`
}

func (r studentRequest) student() models.Student {
	return models.Student{
		Matricule:        r.Matricule,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		Address:          r.Address,
		BirthDate:        r.BirthDate,
		Gender:           r.Gender,
		DepartmentID:     r.DepartmentID,
		ProgramID:        r.ProgramID,
		Level:            r.Level,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		IsClassRep:       r.IsClassRep,
	}
}

type studentPatchRequest struct {
	Matricule        *string               `json:"matricule" binding:"omitempty,matricule"`
	FirstName        *string               `json:"firstName" binding:"omitempty,min=1"`
	LastName         *string               `json:"lastName" binding:"omitempty,min=1"`
	Email            *string               `json:"email" binding:"omitempty,email"`
	Phone            *string               `json:"phone"`
	Address          *string               `json:"address"`
	BirthDate        *string               `json:"birthDate"`
	Gender           *string               `json:"gender" binding:"omitempty,oneof=M F"`
	AvatarURL        *string               `json:"avatarUrl" binding:"omitempty,url"`
	DepartmentID     *string               `json:"departmentId" binding:"omitempty,min=1"`
	ProgramID        *string               `json:"programId" binding:"omitempty,min=1"`
	Level            *string               `json:"level" binding:"omitempty,min=1"`
	Status           *models.StudentStatus `json:"status" binding:"omitempty,oneof=ACTIVE ALUMNI SUSPENDED"`
	RegistrationDate *string               `json:"registrationDate"`
	GPA              *float64              `json:"gpa" binding:"omitempty,gte=0,lte=20"`
	IsClassRep       *bool                 `json:"isClassRep"`
}

func (r studentPatchRequest) patch() models.StudentPatch {
	return models.StudentPatch{
		Matricule:        r.Matricule,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		Address:          r.Address,
		BirthDate:        r.BirthDate,
		Gender:           r.Gender,
		AvatarURL:        r.AvatarURL,
		DepartmentID:     r.DepartmentID,
		ProgramID:        r.ProgramID,
		Level:            r.Level,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		GPA:              r.GPA,
		IsClassRep:       r.IsClassRep,
	}
}

type courseRequest struct {
	Title     string          `json:"title" binding:"required"`
	Code      string          `json:"code" binding:"required"`
	Credits   int             `json:"credits" binding:"gt=0"`
	Semester  models.Semester `json:"semester" binding:"required,oneof=S1 S2"`
	ProgramID string          `json:"programId" binding:"required"`
	TeacherID string          `json:"teacherId" binding:"required"`
	Day       string          `json:"day"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Room      string          `json:"room"`
	Color     string          `json:"color"`
}

func (r courseRequest) course() models.Course {
	return models.Course{
		Title:     r.Title,
		Code:      r.Code,
		Credits:   r.Credits,
		Semester:  r.Semester,
		ProgramID: r.ProgramID,
		TeacherID: r.TeacherID,
		Day:       r.Day,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
		Color:     r.Color,
	}
}

type paymentRequest struct {
	StudentID string               `json:"studentId" binding:"required"`
	Amount    float64              `json:"amount" binding:"gt=0"`
	Type      models.PaymentType   `json:"type" binding:"required,oneof=TUITION REGISTRATION LIBRARY OTHER"`
	Date      string               `json:"date"`
	Status    models.PaymentStatus `json:"status" binding:"required,oneof=PAID PENDING OVERDUE"`
	Reference string               `json:"reference"`
}

type paymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required,oneof=PAID PENDING OVERDUE"`
}

type announcementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	Important   bool   `json:"important"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
}

type absenceStatusRequest struct {
	Status   models.AbsenceStatus `json:"status" binding:"required,oneof=UNJUSTIFIED PENDING JUSTIFIED"`
	Override bool                 `json:"override"`
}

type justificationRequest struct {
	DocumentURL string `json:"documentUrl" binding:"required"`
}

type languageRequest struct {
	Language models.Language `json:"language" binding:"required,uilanguage"`
}
