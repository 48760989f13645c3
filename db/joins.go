package db

import (
	"sort"

	"campus-intranet-go/locale"
	"campus-intranet-go/models"
)

// Joined views are recomputed from the collections on every call.

// DepartmentView is a department with its programs, students and head.
type DepartmentView struct {
	models.Department
	HeadName string           `json:"headName"`
	Head     *models.Teacher  `json:"head,omitempty"`
	Programs []models.Program `json:"programs"`
	Students []models.Student `json:"students"`
}

// ProgramView is a program with its department and enrolled students.
type ProgramView struct {
	models.Program
	DepartmentName string             `json:"departmentName"`
	Department     *models.Department `json:"department,omitempty"`
	Students       []models.Student   `json:"students"`
}

// StudentView is a student with its program, department, payments and
// absences.
type StudentView struct {
	models.Student
	ProgramName    string             `json:"programName"`
	Program        *models.Program    `json:"program,omitempty"`
	DepartmentName string             `json:"departmentName"`
	Department     *models.Department `json:"department,omitempty"`
	Payments       []models.Payment   `json:"payments"`
	Absences       []models.Absence   `json:"absences"`
}

// CourseView is a course with its program and teacher.
type CourseView struct {
	models.Course
	ProgramName string          `json:"programName"`
	Program     *models.Program `json:"program,omitempty"`
	TeacherName string          `json:"teacherName"`
	Teacher     *models.Teacher `json:"teacher,omitempty"`
}

// TeacherView is a teacher with its department.
type TeacherView struct {
	models.Teacher
	DepartmentName string `json:"departmentName"`
}

func ptr[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// DepartmentView joins a department with its dependents.
func (s *Store) DepartmentView(id string) (DepartmentView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := findByID(s.departments, id, departmentID)
	if !ok {
		return DepartmentView{}, false
	}
	view := DepartmentView{
		Department: d,
		HeadName:   s.label(locale.Unassigned),
		Programs:   s.programsIn(d.ID),
		Students:   s.studentsWhere(func(st models.Student) bool { return st.DepartmentID == d.ID }),
	}
	if d.HeadOfDepartmentID != "" {
		if head, ok := findByID(s.teachers, d.HeadOfDepartmentID, teacherID); ok {
			view.Head = &head
			view.HeadName = fullName(head.FirstName, head.LastName)
		}
	}
	return view, true
}

// ProgramView joins a program with its department and students.
func (s *Store) ProgramView(id string) (ProgramView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := findByID(s.programs, id, programID)
	if !ok {
		return ProgramView{}, false
	}
	dept, deptOK := findByID(s.departments, p.DepartmentID, departmentID)
	view := ProgramView{
		Program:        p,
		DepartmentName: s.label(locale.Unknown),
		Department:     ptr(dept, deptOK),
		Students:       s.studentsWhere(func(st models.Student) bool { return st.ProgramID == p.ID }),
	}
	if deptOK {
		view.DepartmentName = dept.Name
	}
	return view, true
}

// StudentView joins a student with everything that references it.
func (s *Store) StudentView(id string) (StudentView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := findByID(s.students, id, studentID)
	if !ok {
		return StudentView{}, false
	}
	prog, progOK := findByID(s.programs, st.ProgramID, programID)
	dept, deptOK := findByID(s.departments, st.DepartmentID, departmentID)

	view := StudentView{
		Student:        st,
		ProgramName:    s.label(locale.Unassigned),
		Program:        ptr(prog, progOK),
		DepartmentName: s.label(locale.Unknown),
		Department:     ptr(dept, deptOK),
		Payments:       []models.Payment{},
		Absences:       []models.Absence{},
	}
	if progOK {
		view.ProgramName = prog.Name
	}
	if deptOK {
		view.DepartmentName = dept.Name
	}
	for _, p := range s.payments {
		if p.StudentID == st.ID {
			view.Payments = append(view.Payments, p)
		}
	}
	for _, a := range s.absences {
		if a.StudentID == st.ID {
			view.Absences = append(view.Absences, a)
		}
	}
	return view, true
}

// CourseViews joins every course with its program and teacher.
func (s *Store) CourseViews() []CourseView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CourseView, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, s.courseView(c))
	}
	return out
}

// CourseView joins one course with its program and teacher.
func (s *Store) CourseView(id string) (CourseView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := findByID(s.courses, id, courseID)
	if !ok {
		return CourseView{}, false
	}
	return s.courseView(c), true
}

func (s *Store) courseView(c models.Course) CourseView {
	prog, progOK := findByID(s.programs, c.ProgramID, programID)
	teacher, teacherOK := findByID(s.teachers, c.TeacherID, teacherID)
	view := CourseView{
		Course:      c,
		ProgramName: s.label(locale.Unassigned),
		Program:     ptr(prog, progOK),
		TeacherName: s.label(locale.Unassigned),
		Teacher:     ptr(teacher, teacherOK),
	}
	if progOK {
		view.ProgramName = prog.Name
	}
	if teacherOK {
		view.TeacherName = fullName(teacher.FirstName, teacher.LastName)
	}
	return view
}

// TeacherViews joins every teacher with its department name.
func (s *Store) TeacherViews() []TeacherView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TeacherView, 0, len(s.teachers))
	for _, t := range s.teachers {
		view := TeacherView{Teacher: t, DepartmentName: s.label(locale.Unknown)}
		if dept, ok := findByID(s.departments, t.DepartmentID, departmentID); ok {
			view.DepartmentName = dept.Name
		}
		out = append(out, view)
	}
	return out
}

// ProgramsInDepartment lists the programs of a department.
func (s *Store) ProgramsInDepartment(departmentID string) []models.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programsIn(departmentID)
}

func (s *Store) programsIn(deptID string) []models.Program {
	out := []models.Program{}
	for _, p := range s.programs {
		if p.DepartmentID == deptID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) studentsWhere(match func(models.Student) bool) []models.Student {
	out := []models.Student{}
	for _, st := range s.students {
		if match(st) {
			out = append(out, st)
		}
	}
	return out
}

// Revenue sums the amount of every payment regardless of status.
func (s *Store) Revenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		total += p.Amount
	}
	return total
}

// DepartmentStat summarises one department on the dashboard.
type DepartmentStat struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Programs int    `json:"programs"`
	Students int    `json:"students"`
}

// Dashboard is the administrator overview.
type Dashboard struct {
	Students       int              `json:"students"`
	Teachers       int              `json:"teachers"`
	Courses        int              `json:"courses"`
	Revenue        float64          `json:"revenue"`
	Departments    []DepartmentStat `json:"departments"`
	RecentPayments []models.Payment `json:"recentPayments"`
}

const recentPaymentsLimit = 5

// Dashboard computes the administrator overview.
func (s *Store) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dash := Dashboard{
		Students:    len(s.students),
		Teachers:    len(s.teachers),
		Courses:     len(s.courses),
		Departments: make([]DepartmentStat, 0, len(s.departments)),
	}
	for _, p := range s.payments {
		dash.Revenue += p.Amount
	}
	for _, d := range s.departments {
		stat := DepartmentStat{ID: d.ID, Name: d.Name}
		for _, p := range s.programs {
			if p.DepartmentID == d.ID {
				stat.Programs++
			}
		}
		for _, st := range s.students {
			if st.DepartmentID == d.ID {
				stat.Students++
			}
		}
		dash.Departments = append(dash.Departments, stat)
	}

	// ISO dates sort lexically.
	recent := clone(s.payments)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > recentPaymentsLimit {
		recent = recent[:recentPaymentsLimit]
	}
	dash.RecentPayments = recent
	return dash
}
