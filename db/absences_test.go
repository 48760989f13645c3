package db

import (
	"errors"
	"math"
	"testing"

	"campus-intranet-go/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.AbsenceStatus
		want     bool
	}{
		{models.AbsenceUnjustified, models.AbsencePending, true},
		{models.AbsencePending, models.AbsenceJustified, true},
		{models.AbsenceJustified, models.AbsenceJustified, true},
		{models.AbsenceUnjustified, models.AbsenceJustified, false},
		{models.AbsencePending, models.AbsenceUnjustified, false},
		{models.AbsenceJustified, models.AbsencePending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestUpdateAbsenceStatus(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateAbsenceStatus("a1", models.AbsenceJustified); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := s.UpdateAbsenceStatus("a1", models.AbsencePending); err != nil {
		t.Fatalf("expected pending, got %v", err)
	}
	if err := s.UpdateAbsenceStatus("a1", models.AbsenceJustified); err != nil {
		t.Fatalf("expected justified, got %v", err)
	}
	if a, _ := s.Absence("a1"); a.Status != models.AbsenceJustified {
		t.Fatalf("expected justified status, got %q", a.Status)
	}
	if err := s.UpdateAbsenceStatus("missing", models.AbsencePending); err != nil {
		t.Fatalf("expected unknown id to be ignored, got %v", err)
	}

	if !s.OverrideAbsenceStatus("a1", models.AbsenceUnjustified) {
		t.Fatal("expected override to apply")
	}
	if a, _ := s.Absence("a1"); a.Status != models.AbsenceUnjustified {
		t.Fatalf("expected override status, got %q", a.Status)
	}
}

func TestSubmitJustification(t *testing.T) {
	s := newTestStore(t)

	a, ok, err := s.SubmitJustification("a1", "certificat.pdf")
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	if a.Status != models.AbsencePending || a.JustificationURL != "certificat.pdf" {
		t.Fatalf("unexpected absence %+v", a)
	}
	if _, _, err := s.SubmitJustification("a1", "again.pdf"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected resubmission to fail, got %v", err)
	}
	if _, ok, _ := s.SubmitJustification("missing", "x.pdf"); ok {
		t.Fatal("expected unknown absence")
	}
}

func TestParseDurationHours(t *testing.T) {
	tests := map[string]float64{
		"2h":      2,
		"1h30":    1.5,
		"3h":      3,
		"45min":   0.75,
		"1h30m":   1.5,
		" 2 h ":   2,
		"":        0,
		"abc":     0,
		"-2h":     0,
		"1h15min": 1.25,
	}
	for in, want := range tests {
		if got := ParseDurationHours(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("ParseDurationHours(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestAttendanceRate(t *testing.T) {
	absences := []models.Absence{
		{Duration: "2h"},
		{Duration: "1h30"},
		{Duration: "3h"},
	}
	if got := AttendanceRate(120, absences); got != 95 {
		t.Fatalf("expected 95%%, got %d", got)
	}
	if got := AttendanceRate(0, absences); got != 100 {
		t.Fatalf("expected 100%% without hours, got %d", got)
	}
	if got := AttendanceRate(2, absences); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}
