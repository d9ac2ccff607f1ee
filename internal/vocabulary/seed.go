package vocabulary

import (
	"github.com/at-ishikawa/langcards/internal/mastery"
)

func reviewed(level mastery.Level, at mastery.Timestamp) mastery.State {
	return mastery.State{Level: level, LastReviewedAt: &at}
}

func demoWords(now mastery.Timestamp) []Word {
	return []Word{
		{ID: "1", Text: "casa", Translation: "house", Language: English, State: mastery.State{Level: mastery.LevelLearning}, CreatedAt: now},
		{ID: "2", Text: "carro", Translation: "car", Language: English, State: mastery.State{Level: mastery.LevelUnknown}, CreatedAt: now},
		{ID: "3", Text: "livro", Translation: "book", Language: English, State: reviewed(mastery.LevelMastered, now), CreatedAt: now},
		{ID: "4", Text: "caneta", Translation: "pen", Language: English, State: mastery.State{Level: mastery.LevelLearning}, CreatedAt: now},
		{ID: "5", Text: "água", Translation: "water", Language: English, State: reviewed(mastery.LevelMastered, now), CreatedAt: now},
	}
}

func demoFlashcards(now mastery.Timestamp) []Flashcard {
	return []Flashcard{
		{
			Word:               Word{ID: "1", Text: "casa", Translation: "house", Language: English, State: mastery.State{Level: mastery.LevelLearning}, CreatedAt: now},
			Context:            "Eu moro em uma casa grande.",
			ContextTranslation: "I live in a big house.",
		},
		{
			Word:               Word{ID: "2", Text: "carro", Translation: "car", Language: English, State: mastery.State{Level: mastery.LevelUnknown}, CreatedAt: now},
			Context:            "Eu tenho um carro azul.",
			ContextTranslation: "I have a blue car.",
		},
		{
			Word:               Word{ID: "3", Text: "livro", Translation: "book", Language: English, State: reviewed(mastery.LevelMastered, now), CreatedAt: now},
			Context:            "Eu gosto de ler um livro.",
			ContextTranslation: "I like to read a book.",
		},
	}
}
