package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func newLanguageCommand() *cobra.Command {
	languageCommand := &cobra.Command{
		Use:   "language",
		Short: "Show or change the target language",
	}

	languageCommand.AddCommand(newLanguageGetCommand())
	languageCommand.AddCommand(newLanguageSetCommand())

	return languageCommand
}

func newLanguageGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the target language",
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

			language, err := env.language(ctx, "")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), language.Label())
			return nil
		},
	}
}

func newLanguageSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <language>",
		Short:     "Change the target language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: languageNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			language, err := vocabulary.ParseLanguage(args[0])
			if err != nil {
				return err
			}
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			if err := env.settings.SetTargetLanguage(ctx, language); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Target language set to %s\n", language.Label())
			return nil
		},
	}
}

func languageNames() []string {
	names := make([]string, 0, len(vocabulary.Languages()))
	for _, language := range vocabulary.Languages() {
		names = append(names, string(language))
	}
	return names
}
