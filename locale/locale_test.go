package locale

import (
	"testing"

	"campus-intranet-go/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want models.Language
		ok   bool
	}{
		{in: "fr", want: models.LanguageFrench, ok: true},
		{in: "en", want: models.LanguageEnglish, ok: true},
		{in: "es-MX", want: models.LanguageSpanish, ok: true},
		{in: " de ", want: models.LanguageGerman, ok: true},
		{in: "it", ok: false},
		{in: "", ok: false},
		{in: "not a tag!", ok: false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok {
			t.Fatalf("Parse(%q): expected ok=%v, got %v", tt.in, tt.ok, ok)
		}
		if ok && got != tt.want {
			t.Fatalf("Parse(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestMatch(t *testing.T) {
	if got := Match("de-DE,de;q=0.9,en;q=0.8", models.LanguageFrench); got != models.LanguageGerman {
		t.Fatalf("expected de, got %q", got)
	}
	if got := Match("ja-JP", models.LanguageEnglish); got != models.LanguageEnglish {
		t.Fatalf("expected fallback en, got %q", got)
	}
	if got := Match("", models.LanguageSpanish); got != models.LanguageSpanish {
		t.Fatalf("expected fallback es, got %q", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(models.LanguageFrench, Undefined); got != "Non défini" {
		t.Fatalf("expected french label, got %q", got)
	}
	if got := Label(models.LanguageEnglish, Unassigned); got != "Unassigned" {
		t.Fatalf("expected english label, got %q", got)
	}
	if got := Label(models.LanguageGerman, Unknown); got != "Unbekannt" {
		t.Fatalf("expected german label, got %q", got)
	}
	if got := Label(models.Language("xx"), Unassigned); got != "Non assigné" {
		t.Fatalf("expected french fallback, got %q", got)
	}
}
