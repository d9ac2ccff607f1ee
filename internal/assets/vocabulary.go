package assets

import (
	"fmt"
	"io"
	"time"
)

// VocabularyTemplate is the data passed to vocabulary notebook templates
type VocabularyTemplate struct {
	Title    string
	Date     time.Time
	Sections []VocabularySection
}

// VocabularySection groups the entries of one target language
type VocabularySection struct {
	Language   string
	Mastered   int
	Learning   int
	Unknown    int
	Words      []VocabularyEntry
	Flashcards []VocabularyEntry
}

type VocabularyEntry struct {
	Word               string
	Translation        string
	Level              string
	Context            string
	ContextTranslation string
}

func WriteVocabularyNotebook(output io.Writer, templatePath string, templateData VocabularyTemplate) error {
	tmpl, err := ParseVocabularyTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseVocabularyTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
