package linkpreview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
)

// maxBodyBytes bounds how much of a page is read while looking for metadata.
const maxBodyBytes = 512 * 1024

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// FirstURL returns the first http(s) URL found in content, or "".
func FirstURL(content string) string {
	return urlPattern.FindString(content)
}

// Metadata is the OpenGraph-ish summary of a linked page.
type Metadata struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// Fetcher resolves link previews with a per-URL result cache so repeated
// posts of the same link do not refetch the page.
type Fetcher struct {
	client *http.Client
	cache  *cache.Cache
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache.New(1*time.Hour, 10*time.Minute),
	}
}

// Fetch downloads the page and extracts title/description/image metadata.
// Callers treat any error as best-effort failure to be swallowed.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Metadata, error) {
	if cached, found := f.cache.Get(pageURL); found {
		return cached.(*Metadata), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("not an html page: %s", contentType)
	}

	meta := parseMetadata(io.LimitReader(resp.Body, maxBodyBytes))
	meta.URL = pageURL
	if meta.Title == "" && meta.Description == "" {
		return nil, fmt.Errorf("no preview metadata found at %s", pageURL)
	}

	f.cache.Set(pageURL, meta, cache.DefaultExpiration)
	return meta, nil
}

func parseMetadata(r io.Reader) *Metadata {
	meta := &Metadata{}
	tokenizer := html.NewTokenizer(r)
	inTitle := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return meta
		case html.TextToken:
			if inTitle && meta.Title == "" {
				meta.Title = strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "title":
				inTitle = true
			case "meta":
				applyMetaTag(meta, token)
			case "body":
				// Metadata lives in <head>; stop once the body starts.
				return meta
			}
		case html.EndTagToken:
			if token := tokenizer.Token(); token.Data == "title" {
				inTitle = false
			}
		}
	}
}

func applyMetaTag(meta *Metadata, token html.Token) {
	var property, name, content string
	for _, attr := range token.Attr {
		switch attr.Key {
		case "property":
			property = attr.Val
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	if content == "" {
		return
	}

	switch property {
	case "og:title":
		meta.Title = content
	case "og:description":
		meta.Description = content
	case "og:image":
		meta.ImageURL = content
	case "og:site_name":
		meta.SiteName = content
	}
	if name == "description" && meta.Description == "" {
		meta.Description = content
	}
}
