package entity

import (
	"strings"
	"time"
	"unicode"
)

// Word is a bilingual vocabulary pair grouped into a category.
type Word struct {
	ID        int64
	Slovak    string
	English   string
	Category  string
	Synonyms  SynonymSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Text returns the word's text on the given language side.
func (w *Word) Text(lang Language) string {
	if lang == LanguageSlovak {
		return w.Slovak
	}
	return w.English
}

// Normalize trims the stored fields ahead of persistence.
func (w *Word) Normalize() {
	w.Slovak = strings.TrimSpace(w.Slovak)
	w.English = strings.TrimSpace(w.English)
	w.Category = strings.TrimSpace(w.Category)
	w.Synonyms.Slovak = normalizeSynonymList(w.Synonyms.Slovak)
	w.Synonyms.English = normalizeSynonymList(w.Synonyms.English)
}

// SynonymSet holds alternate acceptable texts per language side.
type SynonymSet struct {
	Slovak  []string
	English []string
}

// ForLanguage returns the synonym list for one side.
func (s SynonymSet) ForLanguage(lang Language) []string {
	if lang == LanguageSlovak {
		return s.Slovak
	}
	return s.English
}

// Synonym is one alternate text attached to a word on a language side.
type Synonym struct {
	ID        int64
	WordID    int64
	Language  Language
	Text      string
	CreatedAt time.Time
}

// WordGroup is the UI-facing view of one category.
type WordGroup struct {
	Name    string
	Enabled bool
	Words   []*Word
}

// DefaultEnabledCategory is the category switched on for fresh clients.
const DefaultEnabledCategory = "basic"

// FormatGroupName renders a category key as a display name ("verbs_basic" -> "Verbs basic").
func FormatGroupName(key string) string {
	if key == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, key)
	runes := []rune(cleaned)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func normalizeSynonymList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
