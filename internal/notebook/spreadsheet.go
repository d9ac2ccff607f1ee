package notebook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// SheetConfig describes where the vocabulary columns are in a spreadsheet
type SheetConfig struct {
	SheetName                string // first sheet when empty
	SkipHeader               bool
	WordColumn               string
	TranslationColumn        string
	ContextColumn            string
	ContextTranslationColumn string
}

func DefaultSheetConfig() SheetConfig {
	return SheetConfig{
		SkipHeader:               true,
		WordColumn:               "A",
		TranslationColumn:        "B",
		ContextColumn:            "C",
		ContextTranslationColumn: "D",
	}
}

type SpreadsheetResult struct {
	Drafts  []vocabulary.FlashcardDraft
	Skipped []string
}

// ReadSpreadsheet reads rows of an .xlsx or .csv file as drafts for language.
// Rows without a word are reported in Skipped.
func ReadSpreadsheet(path string, language vocabulary.Language, config SheetConfig) (SpreadsheetResult, error) {
	if !language.Valid() {
		return SpreadsheetResult{}, fmt.Errorf("%w: %q", vocabulary.ErrInvalidLanguage, language)
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readExcel(path, config.SheetName)
	default:
		return SpreadsheetResult{}, fmt.Errorf("unsupported spreadsheet extension %q", ext)
	}
	if err != nil {
		return SpreadsheetResult{}, err
	}
	return parseRows(rows, language, config)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read(%s) > %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("GetRows(%s) > %w", sheetName, err)
	}
	return rows, nil
}

type columns struct {
	word, translation, context, contextTranslation int
}

func columnIndex(name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	number, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return -1, fmt.Errorf("excelize.ColumnNameToNumber(%s) > %w", name, err)
	}
	return number - 1, nil
}

func (config SheetConfig) columns() (columns, error) {
	var c columns
	var err error
	for _, target := range []struct {
		name  string
		index *int
	}{
		{config.WordColumn, &c.word},
		{config.TranslationColumn, &c.translation},
		{config.ContextColumn, &c.context},
		{config.ContextTranslationColumn, &c.contextTranslation},
	} {
		if *target.index, err = columnIndex(target.name); err != nil {
			return columns{}, err
		}
	}
	if c.word < 0 {
		return columns{}, fmt.Errorf("word column is required")
	}
	return c, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func parseRows(rows [][]string, language vocabulary.Language, config SheetConfig) (SpreadsheetResult, error) {
	c, err := config.columns()
	if err != nil {
		return SpreadsheetResult{}, err
	}

	result := SpreadsheetResult{Drafts: []vocabulary.FlashcardDraft{}}
	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}
		word := cell(row, c.word)
		if word == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: no word", i+1))
			continue
		}
		result.Drafts = append(result.Drafts, vocabulary.FlashcardDraft{
			Candidate: vocabulary.Candidate{
				Text:        word,
				Translation: cell(row, c.translation),
				Level:       mastery.LevelUnknown,
				Language:    language,
			},
			Context:            cell(row, c.context),
			ContextTranslation: cell(row, c.contextTranslation),
		})
	}
	return result, nil
}

// ImportDrafts adds every draft as a word, and drafts with a context also as a flashcard.
func ImportDrafts(ctx context.Context, store Store, drafts []vocabulary.FlashcardDraft) (ImportResult, error) {
	nb := Notebook{}
	for _, draft := range drafts {
		entry := Entry{
			Word:        draft.Text,
			Translation: draft.Translation,
			Language:    draft.Language,
			Level:       draft.Level,
		}
		nb.Words = append(nb.Words, entry)
		if draft.Context != "" {
			entry.Context = draft.Context
			entry.ContextTranslation = draft.ContextTranslation
			nb.Flashcards = append(nb.Flashcards, entry)
		}
	}
	return Import(ctx, store, nb)
}
