// Package source fetches web articles to use as text for translation.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	readability "github.com/go-shiori/go-readability"
)

const maxBodySize = 10 * 1024 * 1024

var (
	ErrInvalidURL = errors.New("invalid article url")
	ErrNoText     = errors.New("no readable text in article")
)

type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Text     string
}

type Fetcher struct {
	client *resty.Client
}

func NewFetcher() *Fetcher {
	client := resty.New().
		SetHeader("User-Agent", "langcards").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &Fetcher{client: client}
}

// FetchArticle downloads rawURL and returns its main readable text.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return Article{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	res, err := f.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("client.R.Get(%s) > %w", rawURL, err)
	}
	if res.StatusCode() != http.StatusOK {
		return Article{}, fmt.Errorf("status code: %d, url: %s", res.StatusCode(), rawURL)
	}
	body := res.Body()
	if len(body) > maxBodySize {
		return Article{}, fmt.Errorf("response body of %d bytes exceeds %d bytes", len(body), maxBodySize)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return Article{}, fmt.Errorf("readability.FromReader > %w", err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Article{}, fmt.Errorf("%w: %s", ErrNoText, rawURL)
	}
	return Article{
		URL:      rawURL,
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     text,
	}, nil
}
