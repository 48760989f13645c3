package db

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"campus-intranet-go/locale"
	"campus-intranet-go/models"
)

// AdminIdentifier is the login identifier that opens an administrator session.
const AdminIdentifier = "admin"

const avatarServiceURL = "https://ui-avatars.com/api/?name="

// ErrDuplicateMatricule is returned when a student is added with a matricule
// already in use.
var ErrDuplicateMatricule = errors.New("matricule already registered")

// Store is the in-memory relational store behind the intranet. It owns every
// domain collection, the current session and the UI preferences.
//
// Lookups and mutators never fail on dangling references: a delete does not
// cascade and readers resolve missing foreign keys to a placeholder label.
type Store struct {
	mu sync.RWMutex

	ids    IDAllocator
	prefs  *Preferences
	logger *slog.Logger

	departments   []models.Department
	programs      []models.Program
	teachers      []models.Teacher
	students      []models.Student
	courses       []models.Course
	payments      []models.Payment
	absences      []models.Absence
	announcements []models.Announcement
	notifications []models.AppNotification
	grades        map[models.Semester]models.GradeSheet
	schedule      []models.ScheduleDay

	user *models.User
}

// Option configures a Store.
type Option func(*Store)

// WithIDAllocator replaces the default UUID allocator.
func WithIDAllocator(ids IDAllocator) Option {
	return func(s *Store) { s.ids = ids }
}

// WithPreferences sets the preference holder.
func WithPreferences(p *Preferences) Option {
	return func(s *Store) { s.prefs = p }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:    UUIDAllocator{},
		logger: slog.Default(),
		grades: map[models.Semester]models.GradeSheet{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prefs == nil {
		s.prefs = NewPreferences(NewMemoryPreferences(), models.LanguageFrench)
	}
	return s
}

// freshID draws ids until one is unused in the target collection.
func (s *Store) freshID(taken func(id string) bool) string {
	for {
		id := s.ids.NewID()
		if id != "" && !taken(id) {
			return id
		}
	}
}

func (s *Store) label(key string) string {
	return locale.Label(s.prefs.Language(), key)
}

func avatarFor(firstName, lastName string) string {
	return avatarServiceURL + url.QueryEscape(firstName) + "+" + url.QueryEscape(lastName)
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	i := indexByID(items, id, idOf)
	if i < 0 {
		return items, false
	}
	return append(items[:i:i], items[i+1:]...), true
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	var zero T
	i := indexByID(items, id, idOf)
	if i < 0 {
		return zero, false
	}
	return items[i], true
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func departmentID(d models.Department) string        { return d.ID }
func programID(p models.Program) string              { return p.ID }
func teacherID(t models.Teacher) string              { return t.ID }
func studentID(s models.Student) string              { return s.ID }
func courseID(c models.Course) string                { return c.ID }
func paymentID(p models.Payment) string              { return p.ID }
func absenceID(a models.Absence) string              { return a.ID }
func announcementID(a models.Announcement) string    { return a.ID }
func notificationID(n models.AppNotification) string { return n.ID }

// --- Session ---

// Login opens a session for identifier. "admin" opens an administrator
// session; a known matricule opens that student's session; anything else
// falls back to the demo student. Login never fails.
func (s *Store) Login(identifier string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	switch {
	case identifier == AdminIdentifier:
		user = models.User{
			ID:       AdminIdentifier,
			Username: AdminIdentifier,
			FullName: "Administrateur",
			Role:     models.RoleAdmin,
		}
	default:
		if student, ok := s.studentByMatricule(identifier); ok {
			user = s.sessionFor(student)
		} else {
			user = demoUser()
		}
	}

	s.user = &user
	s.logger.Info("session opened", "user_id", user.ID, "role", user.Role)
	return user
}

func (s *Store) studentByMatricule(matricule string) (models.Student, bool) {
	for _, st := range s.students {
		if st.Matricule == matricule {
			return st, true
		}
	}
	return models.Student{}, false
}

// sessionFor derives a session user from a student record. The major falls
// back to the French "Non défini" whatever the UI language.
func (s *Store) sessionFor(st models.Student) models.User {
	major := locale.Label(models.LanguageFrench, locale.Undefined)
	if program, ok := findByID(s.programs, st.ProgramID, programID); ok {
		major = program.Name
	}
	return models.User{
		ID:              st.ID,
		Username:        st.Matricule,
		Matricule:       st.Matricule,
		FullName:        fullName(st.FirstName, st.LastName),
		FirstName:       st.FirstName,
		LastName:        st.LastName,
		AvatarURL:       st.AvatarURL,
		Role:            models.RoleStudent,
		LinkedStudentID: st.ID,
		Bio:             "Passionné de technologie et de design.",
		GPA:             st.GPA,
		Rank:            12,
		Level:           st.Level,
		Major:           major,
		IsClassRep:      st.IsClassRep,
	}
}

func demoUser() models.User {
	return models.User{
		ID:         "u1",
		Username:   "demo",
		FullName:   "Demo Student",
		FirstName:  "Demo",
		LastName:   "Student",
		Role:       models.RoleStudent,
		GPA:        14.5,
		Rank:       5,
		Level:      "M1",
		Major:      "Informatique",
		Bio:        "Etudiant Démo",
		IsClassRep: true,
		Matricule:  "2025-DEMO",
	}
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Logout clears the session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.logger.Info("session closed", "user_id", s.user.ID)
	}
	s.user = nil
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// UpdateUser merges patch into the session user. It is a no-op when nobody is
// logged in. The full name is recomputed when a name part changes and both
// parts are known; otherwise the current full name is kept.
func (s *Store) UpdateUser(patch models.UserPatch) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.User{}, false
	}
	u := *s.user
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if (patch.FirstName != nil || patch.LastName != nil) && u.FirstName != "" && u.LastName != "" {
		u.FullName = fullName(u.FirstName, u.LastName)
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = *patch.AvatarURL
	}
	s.user = &u
	return u, true
}

// --- Departments ---

// Departments returns every department.
func (s *Store) Departments() []models.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.departments)
}

// Department looks a department up by id.
func (s *Store) Department(id string) (models.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.departments, id, departmentID)
}

// AddDepartment stores d under a fresh id and returns the id. d.ID is ignored.
func (s *Store) AddDepartment(d models.Department) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.freshID(func(id string) bool { return indexByID(s.departments, id, departmentID) >= 0 })
	s.departments = append(s.departments, d)
	s.logger.Info("department added", "id", d.ID, "name", d.Name)
	return d.ID
}

// DeleteDepartment removes a department. Programs, teachers and students
// referencing it are left untouched.
func (s *Store) DeleteDepartment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.departments, ok = removeByID(s.departments, id, departmentID)
	return ok
}

// --- Programs ---

// Programs returns every program.
func (s *Store) Programs() []models.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.programs)
}

// Program looks a program up by id.
func (s *Store) Program(id string) (models.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.programs, id, programID)
}

// AddProgram stores p under a fresh id and returns the id.
func (s *Store) AddProgram(p models.Program) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.freshID(func(id string) bool { return indexByID(s.programs, id, programID) >= 0 })
	s.programs = append(s.programs, p)
	s.logger.Info("program added", "id", p.ID, "name", p.Name)
	return p.ID
}

// DeleteProgram removes a program without touching its students or courses.
func (s *Store) DeleteProgram(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.programs, ok = removeByID(s.programs, id, programID)
	return ok
}

// --- Teachers ---

// Teachers returns every teacher.
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.teachers)
}

// Teacher looks a teacher up by id.
func (s *Store) Teacher(id string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.teachers, id, teacherID)
}

// AddTeacher stores t under a fresh id with a generated avatar and returns the
// id.
func (s *Store) AddTeacher(t models.Teacher) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.freshID(func(id string) bool { return indexByID(s.teachers, id, teacherID) >= 0 })
	t.AvatarURL = avatarFor(t.FirstName, t.LastName)
	s.teachers = append(s.teachers, t)
	s.logger.Info("teacher added", "id", t.ID)
	return t.ID
}

// DeleteTeacher removes a teacher. Departments it heads and courses it teaches
// keep the dangling id.
func (s *Store) DeleteTeacher(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.teachers, ok = removeByID(s.teachers, id, teacherID)
	return ok
}

// --- Students ---

// Students returns every student.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.students)
}

// Student looks a student up by id.
func (s *Store) Student(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.students, id, studentID)
}

// StudentByMatricule looks a student up by matricule.
func (s *Store) StudentByMatricule(matricule string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.studentByMatricule(matricule)
}

// AddStudent stores st under a fresh id with a generated avatar and a GPA of
// zero. The matricule must not already be registered.
func (s *Store) AddStudent(st models.Student) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addStudent(st)
}

func (s *Store) addStudent(st models.Student) (string, error) {
	if _, taken := s.studentByMatricule(st.Matricule); taken {
		return "", ErrDuplicateMatricule
	}
	st.ID = s.freshID(func(id string) bool { return indexByID(s.students, id, studentID) >= 0 })
	st.AvatarURL = avatarFor(st.FirstName, st.LastName)
	st.GPA = 0
	if st.Status == "" {
		st.Status = models.StudentActive
	}
	s.students = append(s.students, st)
	s.logger.Info("student added", "id", st.ID, "matricule", st.Matricule)
	return st.ID, nil
}

// UpdateStudent merges patch into the student with the given id. Changing the
// matricule to one held by another student fails with ErrDuplicateMatricule.
func (s *Store) UpdateStudent(id string, patch models.StudentPatch) (models.Student, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.students, id, studentID)
	if i < 0 {
		return models.Student{}, false, nil
	}
	if patch.Matricule != nil {
		if other, taken := s.studentByMatricule(*patch.Matricule); taken && other.ID != id {
			return models.Student{}, true, ErrDuplicateMatricule
		}
	}

	st := s.students[i]
	applyStudentPatch(&st, patch)
	s.students[i] = st
	return st, true, nil
}

func applyStudentPatch(st *models.Student, p models.StudentPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&st.Matricule, p.Matricule)
	setString(&st.FirstName, p.FirstName)
	setString(&st.LastName, p.LastName)
	setString(&st.Email, p.Email)
	setString(&st.Phone, p.Phone)
	setString(&st.Address, p.Address)
	setString(&st.BirthDate, p.BirthDate)
	setString(&st.Gender, p.Gender)
	setString(&st.AvatarURL, p.AvatarURL)
	setString(&st.DepartmentID, p.DepartmentID)
	setString(&st.ProgramID, p.ProgramID)
	setString(&st.Level, p.Level)
	setString(&st.RegistrationDate, p.RegistrationDate)
	if p.Status != nil {
		st.Status = *p.Status
	}
	if p.GPA != nil {
		st.GPA = *p.GPA
	}
	if p.IsClassRep != nil {
		st.IsClassRep = *p.IsClassRep
	}
}

// DeleteStudent removes a student. Payments and absences keep the dangling id.
func (s *Store) DeleteStudent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.students, ok = removeByID(s.students, id, studentID)
	return ok
}

// SearchStudents returns students whose first name, last name or matricule
// contains query, case-insensitively. An empty query matches everyone.
func (s *Store) SearchStudents(query string) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Student{}
	for _, st := range s.students {
		if q == "" ||
			strings.Contains(strings.ToLower(st.FirstName), q) ||
			strings.Contains(strings.ToLower(st.LastName), q) ||
			strings.Contains(strings.ToLower(st.Matricule), q) {
			out = append(out, st)
		}
	}
	return out
}

// --- Courses ---

// Courses returns every course.
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.courses)
}

// Course looks a course up by id.
func (s *Store) Course(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.courses, id, courseID)
}

// AddCourse stores c under a fresh id and returns the id.
func (s *Store) AddCourse(c models.Course) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.freshID(func(id string) bool { return indexByID(s.courses, id, courseID) >= 0 })
	s.courses = append(s.courses, c)
	s.logger.Info("course added", "id", c.ID, "code", c.Code)
	return c.ID
}

// DeleteCourse removes a course.
func (s *Store) DeleteCourse(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.courses, ok = removeByID(s.courses, id, courseID)
	return ok
}

// --- Payments ---

// Payments returns every payment.
func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.payments)
}

// Payment looks a payment up by id.
func (s *Store) Payment(id string) (models.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.payments, id, paymentID)
}

// AddPayment stores p under a fresh id and returns the id.
func (s *Store) AddPayment(p models.Payment) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.freshID(func(id string) bool { return indexByID(s.payments, id, paymentID) >= 0 })
	s.payments = append(s.payments, p)
	s.logger.Info("payment added", "id", p.ID, "student_id", p.StudentID, "amount", p.Amount)
	return p.ID
}

// UpdatePaymentStatus changes the status of one payment and nothing else.
func (s *Store) UpdatePaymentStatus(id string, status models.PaymentStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.payments, id, paymentID)
	if i < 0 {
		return false
	}
	s.payments[i].Status = status
	return true
}

// DeletePayment removes a payment.
func (s *Store) DeletePayment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.payments, ok = removeByID(s.payments, id, paymentID)
	return ok
}

// --- Announcements ---

// Announcements returns announcements newest first.
func (s *Store) Announcements() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.announcements)
}

// AddAnnouncement stores a under a fresh id at the head of the list.
func (s *Store) AddAnnouncement(a models.Announcement) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.freshID(func(id string) bool { return indexByID(s.announcements, id, announcementID) >= 0 })
	s.announcements = append([]models.Announcement{a}, s.announcements...)
	return a.ID
}

// DeleteAnnouncement removes an announcement.
func (s *Store) DeleteAnnouncement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.announcements, ok = removeByID(s.announcements, id, announcementID)
	return ok
}

// --- Notifications ---

// Notifications returns every notification.
func (s *Store) Notifications() []models.AppNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notifications)
}

// UnreadCount counts unread notifications at call time.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, notif := range s.notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}

// MarkAllAsRead marks every notification read.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

// DeleteNotification removes a notification.
func (s *Store) DeleteNotification(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.notifications, ok = removeByID(s.notifications, id, notificationID)
	return ok
}

// --- Grades & schedule ---

// Grades returns the grade sheet of a semester.
func (s *Store) Grades(semester models.Semester) models.GradeSheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.grades[semester])
}

// Schedule returns the weekly schedule.
func (s *Store) Schedule() []models.ScheduleDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScheduleDay, len(s.schedule))
	for i, day := range s.schedule {
		day.Courses = clone(day.Courses)
		out[i] = day
	}
	return out
}

// --- Preferences ---

// Preferences returns the preference holder.
func (s *Store) Preferences() *Preferences {
	return s.prefs
}

// Theme returns the current theme.
func (s *Store) Theme() models.Theme {
	return s.prefs.Theme()
}

// Language returns the current language.
func (s *Store) Language() models.Language {
	return s.prefs.Language()
}

// ToggleTheme flips the theme and persists it. A persistence failure is logged
// and the in-memory value is kept.
func (s *Store) ToggleTheme(ctx context.Context) models.Theme {
	theme, err := s.prefs.ToggleTheme(ctx)
	if err != nil {
		s.logger.Warn("theme not persisted", "theme", theme, "error", err)
	}
	return theme
}

// SetLanguage sets and persists the language.
func (s *Store) SetLanguage(ctx context.Context, lang models.Language) error {
	if err := s.prefs.SetLanguage(ctx, lang); err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) {
			return err
		}
		s.logger.Warn("language not persisted", "language", lang, "error", err)
	}
	return nil
}
