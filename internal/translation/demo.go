package translation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// Phrase is a source sentence with its known translations.
type Phrase struct {
	Source       string                         `yaml:"source"`
	Translations map[vocabulary.Language]string `yaml:"translations"`
}

var demoPhrases = []Phrase{
	{
		Source: "Olá, como você está? Eu estou aprendendo português.",
		Translations: map[vocabulary.Language]string{
			vocabulary.English: "Hello, how are you? I am learning Portuguese.",
			vocabulary.Spanish: "Hola, ¿cómo estás? Estoy aprendiendo portugués.",
			vocabulary.French:  "Bonjour, comment ça va? J'apprends le portugais.",
			vocabulary.German:  "Hallo, wie geht es dir? Ich lerne Portugiesisch.",
			vocabulary.Italian: "Ciao, come stai? Sto imparando il portoghese.",
		},
	},
	{
		Source: "Eu gosto de comer frutas e beber água todos os dias.",
		Translations: map[vocabulary.Language]string{
			vocabulary.English: "I like to eat fruits and drink water every day.",
			vocabulary.Spanish: "Me gusta comer frutas y beber agua todos los días.",
			vocabulary.French:  "J'aime manger des fruits et boire de l'eau tous les jours.",
			vocabulary.German:  "Ich esse gerne Obst und trinke jeden Tag Wasser.",
			vocabulary.Italian: "Mi piace mangiare frutta e bere acqua ogni giorno.",
		},
	},
	{
		Source: "O clima está muito bom hoje, vamos à praia.",
		Translations: map[vocabulary.Language]string{
			vocabulary.English: "The weather is very good today, let's go to the beach.",
			vocabulary.Spanish: "El clima está muy bueno hoy, vamos a la playa.",
			vocabulary.French:  "Le temps est très bon aujourd'hui, allons à la plage.",
			vocabulary.German:  "Das Wetter ist heute sehr gut, lass uns an den Strand gehen.",
			vocabulary.Italian: "Il tempo è molto bello oggi, andiamo in spiaggia.",
		},
	},
}

// Demo answers from a fixed phrase table and marks everything else as translated.
type Demo struct {
	phrases map[string]map[vocabulary.Language]string
}

func NewDemo(extra ...Phrase) *Demo {
	d := &Demo{phrases: make(map[string]map[vocabulary.Language]string)}
	d.add(demoPhrases)
	d.add(extra)
	return d
}

// NewDemoFromFile extends the demo table with a YAML list of phrases.
func NewDemoFromFile(path string) (*Demo, error) {
	phrases, err := LoadPhrasebook(path)
	if err != nil {
		return nil, err
	}
	return NewDemo(phrases...), nil
}

func LoadPhrasebook(path string) ([]Phrase, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var phrases []Phrase
	if err := yaml.NewDecoder(file).Decode(&phrases); err != nil {
		return nil, fmt.Errorf("yaml.Decode(%s) > %w", path, err)
	}
	for i, phrase := range phrases {
		if strings.TrimSpace(phrase.Source) == "" {
			return nil, fmt.Errorf("phrase %d in %s has no source", i, path)
		}
		for language := range phrase.Translations {
			if !language.Valid() {
				return nil, fmt.Errorf("phrase %d in %s: %w: %q", i, path, vocabulary.ErrInvalidLanguage, language)
			}
		}
	}
	return phrases, nil
}

func (d *Demo) add(phrases []Phrase) {
	for _, phrase := range phrases {
		translations, ok := d.phrases[phrase.Source]
		if !ok {
			translations = make(map[vocabulary.Language]string)
			d.phrases[phrase.Source] = translations
		}
		for language, text := range phrase.Translations {
			translations[language] = text
		}
	}
}

func (d *Demo) Translate(ctx context.Context, text string, language vocabulary.Language) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if translated, ok := d.phrases[text][language]; ok {
		return translated, nil
	}
	return fmt.Sprintf("[Translated to %s] %s", language, text), nil
}
