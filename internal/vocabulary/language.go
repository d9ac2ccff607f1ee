package vocabulary

import (
	"fmt"
	"strings"
)

// Language is a target language the learner translates into.
type Language string

const (
	English Language = "english"
	Spanish Language = "spanish"
	French  Language = "french"
	German  Language = "german"
	Italian Language = "italian"
)

// SourceLanguage is the language of the texts learners paste in.
const SourceLanguage = "portuguese"

// DefaultLanguage is used until the learner picks a target language.
const DefaultLanguage = English

var languageLabels = map[Language]string{
	English: "English",
	Spanish: "Spanish",
	French:  "French",
	German:  "German",
	Italian: "Italian",
}

// Languages returns every supported target language.
func Languages() []Language {
	return []Language{English, Spanish, French, German, Italian}
}

func (l Language) Valid() bool {
	_, ok := languageLabels[l]
	return ok
}

// Label is the human readable name, e.g. "English".
func (l Language) Label() string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
	return lang, nil
}
