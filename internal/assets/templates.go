// Package assets holds the built-in templates for rendered notebooks.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/vocabulary-notebook.md.go.tmpl
var fallbackVocabularyNotebookTemplate string

const vocabularyNotebookTemplateName = "vocabulary-notebook.md.go.tmpl"

// ParseVocabularyTemplate parses templatePath, or the built-in template when
// templatePath is empty, missing or invalid.
func ParseVocabularyTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, vocabularyNotebookTemplateName, fallbackVocabularyNotebookTemplate)
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
