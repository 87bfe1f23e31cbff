// Package metadata scrapes OpenGraph and meta tags of external pages for link previews.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"resty.dev/v3"
)

// UserAgent is sent with every page request.
const UserAgent = "Mozilla/5.0 (compatible; readon.gr/1.0; +https://readon.gr/)"

// DefaultTimeout ...
const DefaultTimeout = 10 * time.Second

var (
	// ErrInvalidURL is returned when the url is not absolute http(s) url.
	ErrInvalidURL = errors.New("invalid url")
	// ErrFetchFailed is returned when the page responded with non-successful status.
	ErrFetchFailed = errors.New("failed to fetch url")
)

// Metadata ...
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

// Fetcher loads pages and extracts their metadata.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates new instance of Fetcher.
func NewFetcher(timeout time.Duration) *Fetcher {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent)

	return &Fetcher{
		client: c,
	}
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	return f.client.Close()
}

// Fetch loads the page and extracts its metadata.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	res, err := f.client.R().WithContext(ctx).Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to request page: %w", err)
	}

	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, res.StatusCode())
	}

	m, err := Parse(strings.NewReader(res.String()), u)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return m, nil
}

// ParseURL ...
func ParseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}

	return u, nil
}

// Parse extracts metadata from html document.
// OpenGraph properties take priority over <title> and description meta.
func Parse(r io.Reader, u *url.URL) (*Metadata, error) {
	var (
		og          = map[string]string{}
		title       string
		description string
		inTitle     bool
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, z.Err()
			}

			return &Metadata{
				Title:       first(og["og:title"], title),
				Description: first(og["og:description"], description),
				Image:       og["og:image"],
				SiteName:    first(og["og:site_name"], u.Hostname()),
				Type:        first(og["og:type"], "website"),
				URL:         first(og["og:url"], u.String()),
			}, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "title":
				inTitle = title == ""
			case "meta":
				property, name, content := attrs(t)
				if strings.HasPrefix(property, "og:") {
					if _, ok := og[property]; !ok {
						og[property] = content
					}
				}
				if name == "description" && description == "" {
					description = content
				}
			}
		case html.TextToken:
			if inTitle {
				title = strings.TrimSpace(string(z.Text()))
				inTitle = false
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

func attrs(t html.Token) (property, name, content string) {
	for _, a := range t.Attr {
		switch strings.ToLower(a.Key) {
		case "property":
			property = strings.ToLower(a.Val)
		case "name":
			name = strings.ToLower(a.Val)
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}

	return property, name, content
}

func first(v ...string) string {
	for _, s := range v {
		if s != "" {
			return s
		}
	}

	return ""
}
