package notebook

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/langcards/internal/assets"
	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/pdf"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func templateEntry(entry Entry) assets.VocabularyEntry {
	return assets.VocabularyEntry{
		Word:               entry.Word,
		Translation:        entry.Translation,
		Level:              string(entry.Level),
		Context:            entry.Context,
		ContextTranslation: entry.ContextTranslation,
	}
}

func templateData(nb Notebook) assets.VocabularyTemplate {
	sections := make(map[vocabulary.Language]*assets.VocabularySection)
	section := func(language vocabulary.Language) *assets.VocabularySection {
		if s, ok := sections[language]; ok {
			return s
		}
		s := &assets.VocabularySection{Language: language.Label()}
		sections[language] = s
		return s
	}

	for _, entry := range nb.Words {
		s := section(entry.Language)
		s.Words = append(s.Words, templateEntry(entry))
		switch entry.Level {
		case mastery.LevelMastered:
			s.Mastered++
		case mastery.LevelLearning:
			s.Learning++
		default:
			s.Unknown++
		}
	}
	for _, entry := range nb.Flashcards {
		s := section(entry.Language)
		s.Flashcards = append(s.Flashcards, templateEntry(entry))
	}

	data := assets.VocabularyTemplate{
		Title: nb.Title,
		Date:  nb.ExportedAt.Time,
	}
	for _, language := range vocabulary.Languages() {
		if s, ok := sections[language]; ok {
			data.Sections = append(data.Sections, *s)
		}
	}
	return data
}

// WriteMarkdown renders nb with the template at templatePath, or the built-in one.
func WriteMarkdown(output io.Writer, templatePath string, nb Notebook) error {
	if err := assets.WriteVocabularyNotebook(output, templatePath, templateData(nb)); err != nil {
		return fmt.Errorf("assets.WriteVocabularyNotebook > %w", err)
	}
	return nil
}

// WriteMarkdownFile writes the markdown notebook and, when withPDF is set, a PDF next to it.
// It returns the paths of the written files.
func WriteMarkdownFile(path, templatePath string, nb Notebook, withPDF bool) ([]string, error) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, templatePath, nb); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	paths := []string{path}
	if !withPDF {
		return paths, nil
	}

	pdfPath, err := pdf.ConvertMarkdownToPDF(path)
	if err != nil {
		return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF > %w", err)
	}
	return append(paths, pdfPath), nil
}
