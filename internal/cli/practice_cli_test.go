package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/langcards/internal/mastery"
	"github.com/at-ishikawa/langcards/internal/practice"
	"github.com/at-ishikawa/langcards/internal/storage"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func openStore(t *testing.T, opts ...vocabulary.Option) *vocabulary.Store {
	t.Helper()
	store, err := vocabulary.Open(context.Background(), storage.NewMemory(), "1", opts...)
	require.NoError(t, err)
	return store
}

func TestPracticeCLI(t *testing.T) {
	tests := []struct {
		name         string
		language     vocabulary.Language
		input        string
		wantOutputs  []string
		wantMastered int
	}{
		{
			name:     "reviews every card",
			language: vocabulary.English,
			input:    "x\ns\n3\n1\n",
			wantOutputs: []string{
				"Card 1 of 2 (50%)",
				"Card 2 of 2 (100%)",
				`unknown command "x"`,
				"marked as mastered",
				"marked as unknown",
				"Practice complete!",
				"Unknown: 1, Learning: 0, Mastered: 1",
			},
			wantMastered: 2,
		},
		{
			name:     "navigates and quits",
			language: vocabulary.English,
			input:    "n\nb\nq\n",
			wantOutputs: []string{
				"Card 2 of 2 (100%)",
				"Bye!",
			},
			wantMastered: 1,
		},
		{
			name:         "skipping the last card finishes",
			language:     vocabulary.English,
			input:        "n\nn\n",
			wantOutputs:  []string{"Practice complete!", "Unknown: 0, Learning: 0, Mastered: 0"},
			wantMastered: 1,
		},
		{
			name:         "closed input",
			language:     vocabulary.English,
			input:        "",
			wantOutputs:  []string{"Card 1 of 2"},
			wantMastered: 1,
		},
		{
			name:         "nothing to practice",
			language:     vocabulary.German,
			input:        "",
			wantOutputs:  []string{"No cards to practice."},
			wantMastered: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			session := practice.Start(store.FlashcardDeck(), tt.language, practice.NewShuffler(1))
			var out bytes.Buffer
			cli := NewPracticeCLI(session, strings.NewReader(tt.input), &out)

			require.NoError(t, cli.Run(context.Background(), cli))

			for _, want := range tt.wantOutputs {
				assert.Contains(t, out.String(), want)
			}
			mastered := 0
			for _, f := range store.Flashcards() {
				if f.Level == mastery.LevelMastered {
					mastered++
				}
			}
			assert.Equal(t, tt.wantMastered, mastered)
		})
	}
}

func TestPracticeCLI_ShowsContext(t *testing.T) {
	store := openStore(t, vocabulary.WithoutDemoSeed())
	_, err := store.AddFlashcard(context.Background(), vocabulary.FlashcardDraft{
		Candidate:          vocabulary.Candidate{Text: "gato", Translation: "cat", Language: vocabulary.English},
		Context:            "O gato corre.",
		ContextTranslation: "The cat runs.",
	})
	require.NoError(t, err)

	session := practice.Start(store.FlashcardDeck(), vocabulary.English, nil)
	var out bytes.Buffer
	cli := NewPracticeCLI(session, strings.NewReader("s\n2\n"), &out)
	require.NoError(t, cli.Run(context.Background(), cli))

	assert.Contains(t, out.String(), "gato")
	assert.Contains(t, out.String(), "O gato corre.")
	assert.Contains(t, out.String(), "cat")
	assert.Contains(t, out.String(), "The cat runs.")
	assert.Contains(t, out.String(), "Unknown: 0, Learning: 1, Mastered: 0")

	word := store.Flashcards()[0]
	assert.Equal(t, mastery.LevelLearning, word.Level)
}
