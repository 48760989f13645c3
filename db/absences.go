package db

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"campus-intranet-go/models"
)

// ErrInvalidTransition is returned when an absence status change would move
// backwards or skip a state.
var ErrInvalidTransition = errors.New("invalid absence status transition")

// CanTransition reports whether an absence may move from one status to
// another: UNJUSTIFIED -> PENDING -> JUSTIFIED. Writing the same status again
// is allowed.
func CanTransition(from, to models.AbsenceStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.AbsenceUnjustified:
		return to == models.AbsencePending
	case models.AbsencePending:
		return to == models.AbsenceJustified
	}
	return false
}

// Absences returns every absence.
func (s *Store) Absences() []models.Absence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.absences)
}

// AbsencesOf returns the absences of one student.
func (s *Store) AbsencesOf(studentID string) []models.Absence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Absence{}
	for _, a := range s.absences {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

// Absence looks an absence up by id.
func (s *Store) Absence(id string) (models.Absence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.absences, id, absenceID)
}

// UpdateAbsenceStatus moves an absence forward along its status machine.
// Unknown ids are ignored.
func (s *Store) UpdateAbsenceStatus(id string, status models.AbsenceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.absences, id, absenceID)
	if i < 0 {
		return nil
	}
	from := s.absences[i].Status
	if !CanTransition(from, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}
	s.absences[i].Status = status
	return nil
}

// OverrideAbsenceStatus sets an absence status without the transition guard.
// It is reserved for administrators.
func (s *Store) OverrideAbsenceStatus(id string, status models.AbsenceStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.absences, id, absenceID)
	if i < 0 {
		return false
	}
	s.logger.Info("absence status overridden", "id", id, "from", s.absences[i].Status, "to", status)
	s.absences[i].Status = status
	return true
}

// SubmitJustification attaches a justification document to an unjustified
// absence and moves it to PENDING.
func (s *Store) SubmitJustification(id, documentURL string) (models.Absence, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.absences, id, absenceID)
	if i < 0 {
		return models.Absence{}, false, nil
	}
	a := s.absences[i]
	if a.Status != models.AbsenceUnjustified {
		return a, true, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, models.AbsencePending)
	}
	a.Status = models.AbsencePending
	a.JustificationURL = documentURL
	s.absences[i] = a
	return a, true, nil
}

var hoursAndMinutes = regexp.MustCompile(`^(\d+)h(\d+)$`)

// ParseDurationHours converts absence durations such as "2h", "1h30",
// "45min" or "1h30m" to hours. Unparseable values count as zero.
func ParseDurationHours(value string) float64 {
	v := strings.ToLower(strings.ReplaceAll(value, " ", ""))
	if v == "" {
		return 0
	}
	v = strings.TrimSuffix(v, "in") // "min" -> "m"
	if m := hoursAndMinutes.FindStringSubmatch(v); m != nil {
		v = m[1] + "h" + m[2] + "m"
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0
	}
	return d.Hours()
}

// MissedHours sums the durations of absences.
func MissedHours(absences []models.Absence) float64 {
	var total float64
	for _, a := range absences {
		total += ParseDurationHours(a.Duration)
	}
	return total
}

// DefaultTeachingHours is the semester teaching load used when none is given.
const DefaultTeachingHours = 120

// AttendanceRate returns the rounded attendance percentage over totalHours of
// teaching, clamped to [0, 100]. With no teaching hours the rate is 100.
func AttendanceRate(totalHours float64, absences []models.Absence) int {
	if totalHours <= 0 {
		return 100
	}
	rate := (totalHours - MissedHours(absences)) / totalHours * 100
	return int(math.Round(math.Max(0, math.Min(100, rate))))
}
