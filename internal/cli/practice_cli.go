package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/practice"
)

var answerLevels = map[string]mastery.Level{
	"1": mastery.LevelUnknown,
	"2": mastery.LevelLearning,
	"3": mastery.LevelMastered,
}

// PracticeCLI walks through a practice session card by card
type PracticeCLI struct {
	*InteractiveCLI
	session  *practice.Session
	reviewed map[mastery.Level]int
}

func NewPracticeCLI(session *practice.Session, stdin io.Reader, stdout io.Writer) *PracticeCLI {
	return &PracticeCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
		reviewed:       make(map[mastery.Level]int),
	}
}

func (p *PracticeCLI) printSummary() {
	out := p.stdoutWriter
	if p.session.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No cards to practice. Everything here is mastered, or nothing has been added yet.")
		return
	}
	_, _ = p.bold.Fprintln(out, "Practice complete!")
	_, _ = fmt.Fprintf(out, "Unknown: %d, Learning: %d, Mastered: %d\n",
		p.reviewed[mastery.LevelUnknown],
		p.reviewed[mastery.LevelLearning],
		p.reviewed[mastery.LevelMastered],
	)
}

func (p *PracticeCLI) Session(ctx context.Context) error {
	out := p.stdoutWriter
	card, ok := p.session.Current()
	if !ok {
		p.printSummary()
		return errEnd
	}

	progress, _ := p.session.Progress()
	_, _ = fmt.Fprintf(out, "\nCard %d of %d (%d%%)\n", p.session.Position()+1, p.session.Len(), progress)
	_, _ = p.bold.Fprintln(out, card.Text)
	if card.Context != "" {
		_, _ = p.italic.Fprintln(out, card.Context)
	}
	_, _ = fmt.Fprint(out, "1) unknown 2) learning 3) mastered, s) show, b) back, n) next, q) quit: ")

	command, err := p.readCommand()
	if err != nil {
		return err
	}

	switch command {
	case "1", "2", "3":
		level := answerLevels[command]
		if err := p.session.Record(ctx, level); err != nil {
			return fmt.Errorf("session.Record(%s) > %w", level, err)
		}
		p.reviewed[level]++
		p.printLevel(level)
	case "s":
		_, _ = p.green.Fprintf(out, "%s\n", card.Translation)
		if card.ContextTranslation != "" {
			_, _ = p.italic.Fprintln(out, card.ContextTranslation)
		}
	case "b":
		p.session.Retreat()
	case "n":
		p.session.Advance()
	case "q":
		_, _ = fmt.Fprintln(out, "Bye!")
		return errEnd
	default:
		_, _ = p.red.Fprintf(out, "unknown command %q\n", command)
	}
	return nil
}

func (p *PracticeCLI) printLevel(level mastery.Level) {
	switch level {
	case mastery.LevelMastered:
		_, _ = p.green.Fprintf(p.stdoutWriter, "marked as %s\n", level)
	case mastery.LevelLearning:
		_, _ = p.yellow.Fprintf(p.stdoutWriter, "marked as %s\n", level)
	default:
		_, _ = p.red.Fprintf(p.stdoutWriter, "marked as %s\n", level)
	}
}
