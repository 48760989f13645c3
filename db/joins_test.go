package db

import (
	"context"
	"testing"

	"campus-intranet-go/models"
)

func TestDepartmentView(t *testing.T) {
	s := newTestStore(t)

	view, ok := s.DepartmentView("d1")
	if !ok {
		t.Fatal("expected department view")
	}
	if len(view.Programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(view.Programs))
	}
	if len(view.Students) != 1 || view.Students[0].ID != "s1" {
		t.Fatalf("expected student s1, got %+v", view.Students)
	}
	if view.Head == nil || view.HeadName != "Alan Turing" {
		t.Fatalf("expected head Alan Turing, got %q", view.HeadName)
	}

	noHead, _ := s.DepartmentView("d3")
	if noHead.Head != nil || noHead.HeadName != "Non assigné" {
		t.Fatalf("expected unassigned head, got %q", noHead.HeadName)
	}

	if _, ok := s.DepartmentView("missing"); ok {
		t.Fatal("expected missing department")
	}
}

func TestDanglingReferencesResolveToLabels(t *testing.T) {
	s := newTestStore(t)
	s.DeleteTeacher("t1")
	s.DeleteProgram("p1")
	s.DeleteDepartment("d1")

	dept, _ := s.DepartmentView("d2")
	if dept.HeadName != "Simone Veil" {
		t.Fatalf("expected intact head, got %q", dept.HeadName)
	}

	student, ok := s.StudentView("s1")
	if !ok {
		t.Fatal("expected student view")
	}
	if student.Program != nil || student.ProgramName != "Non assigné" {
		t.Fatalf("expected unassigned program, got %q", student.ProgramName)
	}
	if student.Department != nil || student.DepartmentName != "Inconnu" {
		t.Fatalf("expected unknown department, got %q", student.DepartmentName)
	}

	course, _ := s.CourseView("c1")
	if course.TeacherName != "Non assigné" || course.ProgramName != "Non assigné" {
		t.Fatalf("expected unassigned labels, got %+v", course)
	}

	if err := s.SetLanguage(context.Background(), models.LanguageEnglish); err != nil {
		t.Fatalf("set language: %v", err)
	}
	course, _ = s.CourseView("c1")
	if course.TeacherName != "Unassigned" {
		t.Fatalf("expected english label, got %q", course.TeacherName)
	}

	for _, tv := range s.TeacherViews() {
		if tv.ID == "t3" && tv.DepartmentName != "Unknown" {
			t.Fatalf("expected unknown department for t3, got %q", tv.DepartmentName)
		}
	}
}

func TestProgramView(t *testing.T) {
	s := newTestStore(t)

	view, ok := s.ProgramView("p3")
	if !ok {
		t.Fatal("expected program view")
	}
	if view.DepartmentName != "Droit & Sciences Po" {
		t.Fatalf("unexpected department %q", view.DepartmentName)
	}
	if len(view.Students) != 1 || view.Students[0].Matricule != "2025-DA-042" {
		t.Fatalf("unexpected students %+v", view.Students)
	}
}

func TestStudentView(t *testing.T) {
	s := newTestStore(t)

	view, _ := s.StudentView("s1")
	if view.ProgramName != "Génie Logiciel" || view.DepartmentName != "Informatique & Numérique" {
		t.Fatalf("unexpected joins %+v", view)
	}
	if len(view.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(view.Payments))
	}
	if len(view.Absences) != 1 {
		t.Fatalf("expected 1 absence, got %d", len(view.Absences))
	}
}

func TestRevenue(t *testing.T) {
	s := NewStore()
	s.Load(SeedData{Payments: []models.Payment{
		{ID: "a", StudentID: "s1", Amount: 1500, Status: models.PaymentPaid},
		{ID: "b", StudentID: "s1", Amount: 1500, Status: models.PaymentPending},
	}})

	if got := s.Revenue(); got != 3000 {
		t.Fatalf("expected revenue 3000, got %v", got)
	}
}

func TestDashboard(t *testing.T) {
	s := newTestStore(t)

	dash := s.Dashboard()
	if dash.Students != 2 || dash.Teachers != 3 || dash.Courses != 3 {
		t.Fatalf("unexpected counts %+v", dash)
	}
	if dash.Revenue != 6000 {
		t.Fatalf("expected revenue 6000, got %v", dash.Revenue)
	}
	if len(dash.Departments) != 3 || dash.Departments[0].Programs != 2 || dash.Departments[0].Students != 1 {
		t.Fatalf("unexpected department stats %+v", dash.Departments)
	}
	if dash.RecentPayments[0].ID != "pay2" {
		t.Fatalf("expected most recent payment first, got %q", dash.RecentPayments[0].ID)
	}
}
