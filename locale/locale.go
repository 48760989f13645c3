// Package locale maps the intranet language preference onto language tags and
// provides the localized fallback labels shown for dangling references.
package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"campus-intranet-go/models"
)

// Label keys.
const (
	Undefined  = "label.undefined"
	Unassigned = "label.unassigned"
	Unknown    = "label.unknown"
)

// Supported lists the languages the intranet can be displayed in, in
// preference order.
var Supported = []models.Language{
	models.LanguageFrench,
	models.LanguageEnglish,
	models.LanguageSpanish,
	models.LanguageGerman,
}

var supportedTags = []language.Tag{
	language.French,
	language.English,
	language.Spanish,
	language.German,
}

var matcher = language.NewMatcher(supportedTags)

var labels = map[language.Tag]map[string]string{
	language.French: {
		Undefined:  "Non défini",
		Unassigned: "Non assigné",
		Unknown:    "Inconnu",
	},
	language.English: {
		Undefined:  "Undefined",
		Unassigned: "Unassigned",
		Unknown:    "Unknown",
	},
	language.Spanish: {
		Undefined:  "No definido",
		Unassigned: "No asignado",
		Unknown:    "Desconocido",
	},
	language.German: {
		Undefined:  "Nicht definiert",
		Unassigned: "Nicht zugewiesen",
		Unknown:    "Unbekannt",
	},
}

var labelCatalog = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for tag, msgs := range labels {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Tag returns the language tag for lang, defaulting to French.
func Tag(lang models.Language) language.Tag {
	for i, l := range Supported {
		if l == lang {
			return supportedTags[i]
		}
	}
	return language.French
}

// Parse accepts a supported language code, optionally with a region
// ("fr-CA" parses as fr).
func Parse(value string) (models.Language, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range Supported {
		if string(l) == base.String() {
			return l, true
		}
	}
	return "", false
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string, fallback models.Language) models.Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[idx]
}

// Printer returns a message printer bound to the label catalog.
func Printer(lang models.Language) *message.Printer {
	return message.NewPrinter(Tag(lang), message.Catalog(labelCatalog))
}

// Label returns the localized text for key.
func Label(lang models.Language, key string) string {
	return Printer(lang).Sprintf(key)
}
