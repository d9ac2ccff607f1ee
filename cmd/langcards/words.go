package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/notebook"
	"github.com/at-ishikawa/langcards/internal/statistics"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func newWordsCommand() *cobra.Command {
	wordsCommand := &cobra.Command{
		Use:   "words",
		Short: "Manage the words in your vocabulary",
	}

	wordsCommand.AddCommand(newWordsListCommand())
	wordsCommand.AddCommand(newWordsStatsCommand())
	wordsCommand.AddCommand(newWordsAddCommand())
	wordsCommand.AddCommand(newWordsImportCommand())
	wordsCommand.AddCommand(newWordsExportCommand())

	return wordsCommand
}

func newWordsListCommand() *cobra.Command {
	var language LanguageFlag
	var level string

	command := &cobra.Command{
		Use:   "list",
		Short: "List words for a target language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var levelFilter mastery.Level
			if level != "" {
				parsed, err := mastery.ParseLevel(level)
				if err != nil {
					return err
				}
				levelFilter = parsed
			}

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()
			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}
			target, err := env.language(ctx, language)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tWORD\tTRANSLATION\tLEVEL")
			for _, word := range store.WordsByLanguage(target) {
				if levelFilter != "" && word.Level != levelFilter {
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", word.ID, word.Text, word.Translation, word.Level)
			}
			return w.Flush()
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	command.Flags().StringVar(&level, "level", "", "only show words at this level (unknown, learning, mastered)")
	return command
}

func newWordsStatsCommand() *cobra.Command {
	var year, month int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show mastery statistics per language and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if month < 0 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()
			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}

			summary := statistics.Summarize(store.Words(), year, month)
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "LANGUAGE\tMASTERED\tLEARNING\tUNKNOWN\tMASTERED %")
			for _, s := range summary.Languages {
				_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\n", s.Language.Label(), s.Mastered, s.Learning, s.Unknown, s.MasteredPercent)
			}
			_, _ = fmt.Fprintf(w, "Total\t%d\t%d\t%d\t%d%%\n", summary.Total.Mastered, summary.Total.Learning, summary.Total.Unknown, summary.MasteredPercent)
			if err := w.Flush(); err != nil {
				return err
			}

			if len(summary.Periods) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PERIOD\tNEW WORDS\tREVIEWED")
			for _, p := range summary.Periods {
				_, _ = fmt.Fprintf(w, "%s\t%d\t%d\n", p.Period, p.NewWords, p.Reviewed)
			}
			return w.Flush()
		},
	}
	command.Flags().IntVar(&year, "year", 0, "only count activity in this year")
	command.Flags().IntVar(&month, "month", 0, "only count activity in this month (1-12)")
	return command
}

func newWordsAddCommand() *cobra.Command {
	var language LanguageFlag
	var level string

	command := &cobra.Command{
		Use:   "add <word> <translation>",
		Short: "Add a word to your vocabulary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()
			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}
			target, err := env.language(ctx, language)
			if err != nil {
				return err
			}

			word, added, err := store.AddWord(ctx, vocabulary.Candidate{
				Text:        args[0],
				Translation: args[1],
				Language:    target,
				Level:       mastery.Level(level),
			})
			if err != nil {
				return fmt.Errorf("AddWord(%s) > %w", args[0], err)
			}
			if !added {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%q is already in your %s vocabulary\n", args[0], target.Label())
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) as %s\n", word.Text, word.Translation, word.Level)
			return nil
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	command.Flags().StringVar(&level, "level", string(mastery.LevelUnknown), "initial level (unknown, learning, mastered)")
	return command
}

func newWordsImportCommand() *cobra.Command {
	var language LanguageFlag
	var sheetName string
	var noHeader bool

	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from a YAML notebook, an xlsx workbook or a csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()
			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}
			target, err := env.language(ctx, language)
			if err != nil {
				return err
			}

			var result notebook.ImportResult
			switch ext := strings.ToLower(filepath.Ext(path)); ext {
			case ".yml", ".yaml":
				nb, err := notebook.ReadYAML(path)
				if err != nil {
					return err
				}
				if nb.Language == "" {
					nb.Language = target
				}
				result, err = notebook.Import(ctx, store, nb)
				if err != nil {
					return err
				}
			case ".xlsx", ".csv":
				sheetConfig := notebook.DefaultSheetConfig()
				sheetConfig.SheetName = sheetName
				sheetConfig.SkipHeader = !noHeader
				sheet, err := notebook.ReadSpreadsheet(path, target, sheetConfig)
				if err != nil {
					return err
				}
				for _, skipped := range sheet.Skipped {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", skipped)
				}
				result, err = notebook.ImportDrafts(ctx, store, sheet.Drafts)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported file type %q", ext)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words (%d skipped) and %d flashcards (%d skipped)\n",
				result.AddedWords, result.SkippedWords, result.AddedFlashcards, result.SkippedFlashcards)
			return nil
		},
	}
	command.Flags().VarP(&language, "language", "l", "language of entries that do not name one (defaults to the saved preference)")
	command.Flags().StringVar(&sheetName, "sheet", "", "xlsx sheet to read (defaults to the first sheet)")
	command.Flags().BoolVar(&noHeader, "no-header", false, "the spreadsheet has no header row")
	return command
}

func newWordsExportCommand() *cobra.Command {
	var language LanguageFlag
	var format string
	var output string
	var templatePath string
	var withPDF bool

	command := &cobra.Command{
		Use:   "export",
		Short: "Export your vocabulary as a YAML or markdown notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format != "yaml" && format != "markdown" {
				return fmt.Errorf("invalid format %q, valid values are \"yaml\" or \"markdown\"", format)
			}
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()
			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			target := vocabulary.Language(language)
			title := "Vocabulary"
			if target != "" {
				title = target.Label() + " vocabulary"
			}
			nb := notebook.Export(title, target, store.Words(), store.Flashcards(), now)

			if output == "" {
				name := "vocabulary"
				if target != "" {
					name = string(target)
				}
				ext := ".yml"
				if format == "markdown" {
					ext = ".md"
				}
				output = filepath.Join(env.cfg.Outputs.ExportDirectory, name+"-"+now.Format("2006-01-02")+ext)
			}

			paths := []string{output}
			switch format {
			case "yaml":
				if err := notebook.WriteYAML(output, nb); err != nil {
					return err
				}
			case "markdown":
				paths, err = notebook.WriteMarkdownFile(output, templatePath, nb, withPDF)
				if err != nil {
					return err
				}
			}
			for _, path := range paths {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", path)
			}
			return nil
		},
	}
	command.Flags().VarP(&language, "language", "l", "only export this language (defaults to every language)")
	command.Flags().StringVar(&format, "format", "yaml", "output format: yaml or markdown")
	command.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the export directory)")
	command.Flags().StringVar(&templatePath, "template", "", "markdown template file (defaults to the built-in template)")
	command.Flags().BoolVar(&withPDF, "pdf", false, "also convert the markdown notebook to PDF")
	return command
}
