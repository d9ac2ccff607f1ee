package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/langcards/internal/capture"
	"github.com/at-ishikawa/langcards/internal/cli"
	"github.com/at-ishikawa/langcards/internal/source"
)

func newTranslateCommand() *cobra.Command {
	var language LanguageFlag
	var articleURL string
	var review bool

	command := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate Portuguese text and add its words to your vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			text := strings.Join(args, " ")
			if articleURL != "" && strings.TrimSpace(text) != "" {
				return fmt.Errorf("pass either text or --url, not both")
			}

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			if articleURL != "" {
				article, err := source.NewFetcher().FetchArticle(ctx, articleURL)
				if err != nil {
					return fmt.Errorf("FetchArticle(%s) > %w", articleURL, err)
				}
				if article.Title != "" {
					_, _ = fmt.Fprintf(out, "# %s\n\n", article.Title)
				}
				text = article.Text
			}

			store, err := env.openStore(ctx)
			if err != nil {
				return err
			}
			target, err := env.language(ctx, language)
			if err != nil {
				return err
			}
			provider, err := env.provider()
			if err != nil {
				return err
			}
			service := capture.NewService(provider, store)

			if !review {
				result, summary, err := service.CaptureAll(ctx, text, target)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s\n\n", result.Translation)
				_, _ = fmt.Fprintf(out, "Added %d new words, %d already in your vocabulary\n", len(summary.Added), summary.Skipped)
				return nil
			}

			result, err := service.Translate(ctx, text, target)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s\n\n", result.Translation)
			extractCLI := cli.NewExtractCLI(service, result, cmd.InOrStdin(), out)
			return extractCLI.Run(ctx, extractCLI)
		},
	}
	command.Flags().VarP(&language, "language", "l", "target language (defaults to the saved preference)")
	command.Flags().StringVar(&articleURL, "url", "", "translate the readable text of a web article")
	command.Flags().BoolVar(&review, "review", false, "choose which extracted words you already know before saving")
	return command
}
