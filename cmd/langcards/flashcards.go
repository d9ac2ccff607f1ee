package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func newFlashcardsCommand() *cobra.Command {
	flashcardsCommand := &cobra.Command{
		Use:   "flashcards",
		Short: "Manage flashcards with example sentences",
	}

	flashcardsCommand.AddCommand(newFlashcardsAddCommand())
	flashcardsCommand.AddCommand(newFlashcardsListCommand())

	return flashcardsCommand
}

func newFlashcardsAddCommand() *cobra.Command {
	var language LanguageFlag
	var exampleContext, contextTranslation string

	command := &cobra.Command{
		Use:   "add <word> <translation>",
		Short: "Add a flashcard, and its word if it is new",
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

			candidate := vocabulary.Candidate{
				Text:        args[0],
				Translation: args[1],
				Language:    target,
				Level:       mastery.LevelUnknown,
			}
			if _, _, err := store.AddWord(ctx, candidate); err != nil {
				return fmt.Errorf("AddWord(%s) > %w", args[0], err)
			}
			flashcard, err := store.AddFlashcard(ctx, vocabulary.FlashcardDraft{
				Candidate:          candidate,
				Context:            exampleContext,
				ContextTranslation: contextTranslation,
			})
			if err != nil {
				return fmt.Errorf("AddFlashcard(%s) > %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added flashcard %s for %q\n", flashcard.ID, flashcard.Text)
			return nil
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	command.Flags().StringVar(&exampleContext, "context", "", "example sentence in Portuguese")
	command.Flags().StringVar(&contextTranslation, "context-translation", "", "translation of the example sentence")
	return command
}

func newFlashcardsListCommand() *cobra.Command {
	var language LanguageFlag

	command := &cobra.Command{
		Use:   "list",
		Short: "List flashcards for a target language",
		Args:  cobra.NoArgs,
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

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tWORD\tTRANSLATION\tLEVEL\tCONTEXT")
			for _, f := range store.FlashcardsByLanguage(target) {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.Text, f.Translation, f.Level, f.Context)
			}
			return w.Flush()
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	return command
}
