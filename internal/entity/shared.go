package entity

import "strings"

// Language identifies one side of a word pair.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageSlovak      Language = "slovak"
	LanguageEnglish     Language = "english"
)

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "slovak", "sk":
		return LanguageSlovak
	case "english", "en":
		return LanguageEnglish
	default:
		return LanguageUnspecified
	}
}

// Opposite returns the other side of the pair.
func (l Language) Opposite() Language {
	switch l {
	case LanguageSlovak:
		return LanguageEnglish
	case LanguageEnglish:
		return LanguageSlovak
	default:
		return LanguageUnspecified
	}
}

// Direction identifies which language is prompted and which is answered.
type Direction string

const (
	DirectionUnspecified Direction = ""
	DirectionSkToEn      Direction = "sk-en"
	DirectionEnToSk      Direction = "en-sk"
)

// ParseDirection converts a wire value into a Direction.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DirectionSkToEn):
		return DirectionSkToEn
	case string(DirectionEnToSk):
		return DirectionEnToSk
	default:
		return DirectionUnspecified
	}
}

// TargetLanguage returns the language the user is expected to answer in.
func (d Direction) TargetLanguage() Language {
	switch d {
	case DirectionSkToEn:
		return LanguageEnglish
	case DirectionEnToSk:
		return LanguageSlovak
	default:
		return LanguageUnspecified
	}
}
