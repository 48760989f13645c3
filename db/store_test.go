package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"campus-intranet-go/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(
		WithIDAllocator(&CounterAllocator{Prefix: "id"}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Load(DefaultSeed())
	return s
}

func TestLoginEveryStudent(t *testing.T) {
	s := newTestStore(t)

	for _, st := range s.Students() {
		user := s.Login(st.Matricule)
		if user.Matricule != st.Matricule || user.FirstName != st.FirstName || user.LastName != st.LastName {
			t.Fatalf("expected identity of %s, got %+v", st.Matricule, user)
		}
		program, _ := s.Program(st.ProgramID)
		if user.Major != program.Name {
			t.Fatalf("expected major %q, got %q", program.Name, user.Major)
		}
		if user.Role != models.RoleStudent {
			t.Fatalf("expected student role, got %q", user.Role)
		}
		if user.IsClassRep != st.IsClassRep {
			t.Fatalf("expected class rep flag %v, got %v", st.IsClassRep, user.IsClassRep)
		}
	}
}

func TestLoginMajorScenario(t *testing.T) {
	s := newTestStore(t)

	user := s.Login("2025-GL-001")
	if user.Major != "Génie Logiciel" {
		t.Fatalf("expected major Génie Logiciel, got %q", user.Major)
	}
	if user.FullName != "Alexandre Dupont" {
		t.Fatalf("expected full name, got %q", user.FullName)
	}
}

func TestLoginMajorAfterProgramDeleted(t *testing.T) {
	s := newTestStore(t)
	// The fallback stays French whatever the UI language.
	if err := s.SetLanguage(context.Background(), models.LanguageEnglish); err != nil {
		t.Fatalf("set language: %v", err)
	}
	s.DeleteProgram("p1")

	user := s.Login("2025-GL-001")
	if user.Major != "Non défini" {
		t.Fatalf("expected Non défini, got %q", user.Major)
	}
}

func TestLoginAdmin(t *testing.T) {
	for _, s := range []*Store{newTestStore(t), NewStore()} {
		user := s.Login("admin")
		if user.Role != models.RoleAdmin {
			t.Fatalf("expected admin role, got %q", user.Role)
		}
	}
}

func TestLoginUnknownFallsBackToDemo(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"", "nobody", "2025-XX-999"} {
		user := s.Login(id)
		if user.ID == "" {
			t.Fatalf("expected demo user for %q", id)
		}
		current, ok := s.CurrentUser()
		if !ok || current.Username != "demo" {
			t.Fatalf("expected demo session for %q, got %+v", id, current)
		}
	}
}

func TestLogout(t *testing.T) {
	s := newTestStore(t)
	s.Login("admin")
	s.Logout()

	if _, ok := s.CurrentUser(); ok {
		t.Fatal("expected no session after logout")
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.UpdateUser(models.UserPatch{Bio: strPtr("x")}); ok {
		t.Fatal("expected no-op without a session")
	}
	if _, ok := s.CurrentUser(); ok {
		t.Fatal("update must not create a session")
	}

	s.Login("2025-GL-001")
	user, ok := s.UpdateUser(models.UserPatch{FirstName: strPtr("Alex"), Bio: strPtr("Hello")})
	if !ok {
		t.Fatal("expected update to apply")
	}
	if user.FullName != "Alex Dupont" {
		t.Fatalf("expected recomputed full name, got %q", user.FullName)
	}
	if user.Bio != "Hello" || user.LastName != "Dupont" || user.Major != "Génie Logiciel" {
		t.Fatalf("unexpected merged user: %+v", user)
	}
	current, _ := s.CurrentUser()
	if !reflect.DeepEqual(current, user) {
		t.Fatalf("expected session to hold merged user, got %+v", current)
	}
}

func TestUpdateUserKeepsNameOfSyntheticSessions(t *testing.T) {
	tests := []struct {
		identifier string
		patch      models.UserPatch
		want       string
	}{
		{"nobody", models.UserPatch{LastName: strPtr("Martin")}, "Demo Martin"},
		{"nobody", models.UserPatch{FirstName: strPtr("Lea")}, "Lea Student"},
		{AdminIdentifier, models.UserPatch{FirstName: strPtr("Root")}, "Administrateur"},
		{AdminIdentifier, models.UserPatch{FirstName: strPtr("Root"), LastName: strPtr("Admin")}, "Root Admin"},
		{AdminIdentifier, models.UserPatch{FullName: strPtr("Direction")}, "Direction"},
	}
	for _, tt := range tests {
		s := newTestStore(t)
		s.Login(tt.identifier)
		user, ok := s.UpdateUser(tt.patch)
		if !ok {
			t.Fatalf("%s: expected update to apply", tt.identifier)
		}
		if user.FullName != tt.want {
			t.Fatalf("%s: expected full name %q, got %q", tt.identifier, tt.want, user.FullName)
		}
	}
}

func TestAddDepartmentAssignsFreshID(t *testing.T) {
	s := newTestStore(t)
	existing := map[string]bool{}
	for _, d := range s.Departments() {
		existing[d.ID] = true
	}

	input := models.Department{ID: "d1", Name: "Sciences", Description: "Physique et Chimie"}
	id := s.AddDepartment(input)
	if id == "" || existing[id] {
		t.Fatalf("expected fresh id, got %q", id)
	}

	got, ok := s.Department(id)
	if !ok {
		t.Fatal("expected department to be found")
	}
	want := input
	want.ID = id
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

type fixedAllocator struct {
	ids []string
}

func (f *fixedAllocator) NewID() string {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id
}

func TestAddSkipsCollidingIDs(t *testing.T) {
	s := NewStore(WithIDAllocator(&fixedAllocator{ids: []string{"d1", "", "d9"}}))
	s.Load(DefaultSeed())

	if id := s.AddDepartment(models.Department{Name: "X"}); id != "d9" {
		t.Fatalf("expected d9, got %q", id)
	}
}

func TestDeleteDepartmentDoesNotCascade(t *testing.T) {
	s := newTestStore(t)
	students := s.Students()
	programs := s.Programs()

	if !s.DeleteDepartment("d1") {
		t.Fatal("expected delete to report removal")
	}
	if _, ok := s.Department("d1"); ok {
		t.Fatal("expected department to be gone")
	}
	if !reflect.DeepEqual(students, s.Students()) {
		t.Fatal("expected students untouched")
	}
	if !reflect.DeepEqual(programs, s.Programs()) {
		t.Fatal("expected programs untouched")
	}
	if s.DeleteDepartment("d1") {
		t.Fatal("expected second delete to be a no-op")
	}
}

func TestCollectionCRUD(t *testing.T) {
	s := newTestStore(t)

	progID := s.AddProgram(models.Program{Name: "Data Science", DepartmentID: "d1", DurationYears: 2, TuitionFee: 6000})
	if _, ok := s.Program(progID); !ok {
		t.Fatal("expected program")
	}
	teacherID := s.AddTeacher(models.Teacher{FirstName: "Grace", LastName: "Hopper", DepartmentID: "d1"})
	teacher, _ := s.Teacher(teacherID)
	if teacher.AvatarURL != avatarServiceURL+"Grace+Hopper" {
		t.Fatalf("unexpected avatar %q", teacher.AvatarURL)
	}
	courseID := s.AddCourse(models.Course{Title: "ML", Code: "DS101", Credits: 3, Semester: models.SemesterS2, ProgramID: progID, TeacherID: teacherID})
	if _, ok := s.Course(courseID); !ok {
		t.Fatal("expected course")
	}
	payID := s.AddPayment(models.Payment{StudentID: "s2", Amount: 200, Type: models.PaymentLibrary, Status: models.PaymentPending})
	if _, ok := s.Payment(payID); !ok {
		t.Fatal("expected payment")
	}

	annID := s.AddAnnouncement(models.Announcement{Title: "Rentrée"})
	if got := s.Announcements()[0].ID; got != annID {
		t.Fatalf("expected newest announcement first, got %q", got)
	}

	for name, del := range map[string]func() bool{
		"program":      func() bool { return s.DeleteProgram(progID) },
		"teacher":      func() bool { return s.DeleteTeacher(teacherID) },
		"course":       func() bool { return s.DeleteCourse(courseID) },
		"payment":      func() bool { return s.DeletePayment(payID) },
		"announcement": func() bool { return s.DeleteAnnouncement(annID) },
	} {
		if !del() {
			t.Fatalf("expected %s delete to remove", name)
		}
		if del() {
			t.Fatalf("expected second %s delete to be a no-op", name)
		}
	}
}

func TestAddStudent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddStudent(models.Student{Matricule: "2025-GL-777", FirstName: "Marie", LastName: "Curie", ProgramID: "p1", DepartmentID: "d1", GPA: 19})
	if err != nil {
		t.Fatalf("add student: %v", err)
	}
	st, _ := s.Student(id)
	if st.GPA != 0 || st.Status != models.StudentActive || st.AvatarURL == "" {
		t.Fatalf("expected defaults applied, got %+v", st)
	}

	if _, err := s.AddStudent(models.Student{Matricule: "2025-GL-777"}); !errors.Is(err, ErrDuplicateMatricule) {
		t.Fatalf("expected duplicate matricule error, got %v", err)
	}
}

func TestUpdateStudent(t *testing.T) {
	s := newTestStore(t)

	level := "M2"
	st, ok, err := s.UpdateStudent("s1", models.StudentPatch{Level: &level})
	if err != nil || !ok {
		t.Fatalf("update student: ok=%v err=%v", ok, err)
	}
	if st.Level != "M2" || st.FirstName != "Alexandre" {
		t.Fatalf("unexpected student %+v", st)
	}

	if _, ok, _ := s.UpdateStudent("missing", models.StudentPatch{Level: &level}); ok {
		t.Fatal("expected unknown student to be reported")
	}
	if _, _, err := s.UpdateStudent("s1", models.StudentPatch{Matricule: strPtr("2025-DA-042")}); !errors.Is(err, ErrDuplicateMatricule) {
		t.Fatalf("expected duplicate matricule error, got %v", err)
	}
}

func TestUpdatePaymentStatusIsolation(t *testing.T) {
	s := newTestStore(t)
	before := s.Payments()

	if !s.UpdatePaymentStatus("pay2", models.PaymentPaid) {
		t.Fatal("expected payment to be updated")
	}
	after := s.Payments()
	for i := range before {
		want := before[i]
		if want.ID == "pay2" {
			want.Status = models.PaymentPaid
		}
		if after[i] != want {
			t.Fatalf("expected %+v, got %+v", want, after[i])
		}
	}
	if s.UpdatePaymentStatus("missing", models.PaymentPaid) {
		t.Fatal("expected unknown payment to be reported")
	}
}

func TestNotifications(t *testing.T) {
	s := newTestStore(t)

	if got := s.UnreadCount(); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	if s.UnreadCount() != s.UnreadCount() {
		t.Fatal("expected stable unread count")
	}

	before := len(s.Notifications())
	if !s.DeleteNotification("1") {
		t.Fatal("expected notification removed")
	}
	if got := len(s.Notifications()); got != before-1 {
		t.Fatalf("expected %d notifications, got %d", before-1, got)
	}
	if got := s.UnreadCount(); got != 1 {
		t.Fatalf("expected 1 unread, got %d", got)
	}

	s.MarkAllAsRead()
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("expected 0 unread, got %d", got)
	}
}

func TestSearchStudents(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 2},
		{query: "dupont", want: 1},
		{query: "SARAH", want: 1},
		{query: "2025-", want: 2},
		{query: "zzz", want: 0},
	}
	for _, tt := range tests {
		if got := len(s.SearchStudents(tt.query)); got != tt.want {
			t.Fatalf("search %q: expected %d, got %d", tt.query, tt.want, got)
		}
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := newTestStore(t)

	students := s.Students()
	students[0].FirstName = "Mutated"
	if st, _ := s.Student("s1"); st.FirstName != "Alexandre" {
		t.Fatal("expected store to be isolated from caller mutations")
	}

	schedule := s.Schedule()
	schedule[0].Courses[0].Room = "Mutated"
	if s.Schedule()[0].Courses[0].Room != "Amphi A" {
		t.Fatal("expected schedule to be isolated from caller mutations")
	}
}

func strPtr(v string) *string { return &v }
