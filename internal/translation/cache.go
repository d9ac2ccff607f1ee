package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/langcards/internal/storage"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

const cacheCollection = "translation"

// Cached answers repeated requests from a key-value store before asking provider.
// Failed and empty translations are not cached.
type Cached struct {
	provider Provider
	kv       storage.KeyValue
}

func NewCached(provider Provider, kv storage.KeyValue) *Cached {
	return &Cached{
		provider: provider,
		kv:       kv,
	}
}

func cacheKey(text string, language vocabulary.Language) string {
	sum := sha256.Sum256([]byte(text))
	return storage.Key(cacheCollection, string(language)+"-"+hex.EncodeToString(sum[:]))
}

func (c *Cached) Translate(ctx context.Context, text string, language vocabulary.Language) (string, error) {
	key := cacheKey(text, language)
	contents, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("kv.Get(%s) > %w", key, err)
	}
	if ok {
		slog.Default().Debug("translation cache hit", "language", language)
		return string(contents), nil
	}

	translated, err := c.provider.Translate(ctx, text, language)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(translated) == "" {
		return translated, nil
	}
	if err := c.kv.Set(ctx, key, []byte(translated)); err != nil {
		slog.Default().Warn("failed to cache a translation", "language", language, "error", err)
	}
	return translated, nil
}
