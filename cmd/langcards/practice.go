package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/langcards/internal/cli"
	"github.com/at-ishikawa/langcards/internal/practice"
)

// DeckFlag selects what a practice session draws cards from
type DeckFlag string

// Set implements pflag.Value.
func (d *DeckFlag) Set(v string) error {
	switch v {
	case string(DeckWords):
		*d = DeckWords
	case string(DeckFlashcards):
		*d = DeckFlashcards
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, DeckWords, DeckFlashcards)
	}
	return nil
}

// String implements pflag.Value.
func (d *DeckFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *DeckFlag) Type() string {
	return "DeckFlag"
}

var (
	_ pflag.Value = (*DeckFlag)(nil)
)

const (
	DeckWords      DeckFlag = "words"
	DeckFlashcards DeckFlag = "flashcards"
)

func newPracticeCommand() *cobra.Command {
	var language LanguageFlag
	var deckFlag DeckFlag
	var seed uint64

	command := &cobra.Command{
		Use:   "practice",
		Short: "Practice the cards you have not mastered yet",
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

			if deckFlag == "" {
				if err := deckFlag.Set(env.cfg.Practice.Deck); err != nil {
					return fmt.Errorf("practice.deck > %w", err)
				}
			}
			var deck practice.Deck = store.FlashcardDeck()
			if deckFlag == DeckWords {
				deck = store.WordDeck()
			}

			var shuffler practice.Shuffler
			if cmd.Flags().Changed("seed") {
				shuffler = practice.NewShuffler(seed)
			}

			session := practice.Start(deck, target, shuffler)
			practiceCLI := cli.NewPracticeCLI(session, cmd.InOrStdin(), cmd.OutOrStdout())
			return practiceCLI.Run(ctx, practiceCLI)
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	command.Flags().Var(&deckFlag, "deck", "deck to practice: words or flashcards (defaults to practice.deck in the config)")
	command.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed for a repeatable card order")
	return command
}
