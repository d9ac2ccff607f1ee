package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/at-ishikawa/langcards/internal/capture"
)

type Committer interface {
	Commit(ctx context.Context, decisions []capture.Decision) (capture.Summary, error)
}

// ExtractCLI lets the learner mark extracted words as known before saving them
type ExtractCLI struct {
	*InteractiveCLI
	committer Committer
	result    capture.Result
	known     []bool
	summary   *capture.Summary
}

func NewExtractCLI(committer Committer, result capture.Result, stdin io.Reader, stdout io.Writer) *ExtractCLI {
	return &ExtractCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		committer:      committer,
		result:         result,
		known:          make([]bool, len(result.Candidates)),
	}
}

// Summary returns what was saved, or false when the learner quit without saving.
func (e *ExtractCLI) Summary() (capture.Summary, bool) {
	if e.summary == nil {
		return capture.Summary{}, false
	}
	return *e.summary, true
}

func (e *ExtractCLI) decisions() []capture.Decision {
	decisions := make([]capture.Decision, 0, len(e.known))
	for i, candidate := range e.result.Candidates {
		decisions = append(decisions, capture.Decision{Candidate: candidate, Known: e.known[i]})
	}
	return decisions
}

func (e *ExtractCLI) printWords() {
	out := e.stdoutWriter
	_, _ = fmt.Fprintln(out)
	for i, candidate := range e.result.Candidates {
		if e.known[i] {
			_, _ = e.green.Fprintf(out, "%2d [known]   %s\n", i+1, candidate.Text)
			continue
		}
		_, _ = fmt.Fprintf(out, "%2d [unknown] %s\n", i+1, candidate.Text)
	}
}

func (e *ExtractCLI) setAll(known bool) {
	for i := range e.known {
		e.known[i] = known
	}
}

func (e *ExtractCLI) Session(ctx context.Context) error {
	out := e.stdoutWriter
	if len(e.result.Candidates) == 0 {
		_, _ = fmt.Fprintln(out, "No words to extract.")
		return errEnd
	}

	e.printWords()
	_, _ = fmt.Fprint(out, "number) toggle, a) all known, u) all unknown, s) save, q) quit: ")
	command, err := e.readCommand()
	if err != nil {
		return err
	}

	switch command {
	case "a":
		e.setAll(true)
	case "u":
		e.setAll(false)
	case "s":
		summary, err := e.committer.Commit(ctx, e.decisions())
		if err != nil {
			return fmt.Errorf("committer.Commit > %w", err)
		}
		e.summary = &summary
		_, _ = e.bold.Fprintf(out, "Saved %d new words, %d already in your vocabulary\n", len(summary.Added), summary.Skipped)
		return errEnd
	case "q":
		_, _ = fmt.Fprintln(out, "Discarded.")
		return errEnd
	default:
		index, err := strconv.Atoi(command)
		if err != nil || index < 1 || index > len(e.known) {
			_, _ = e.red.Fprintf(out, "unknown command %q\n", command)
			return nil
		}
		e.known[index-1] = !e.known[index-1]
	}
	return nil
}
