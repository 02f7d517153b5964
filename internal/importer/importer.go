package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoProductData = errors.New("product page has no usable metadata")

// Product - данные товара, извлеченные со страницы магазина.
type Product struct {
	Name        string
	Description string
	ImageURL    string
}

// Importer reads product pages and extracts OpenGraph metadata.
type Importer struct {
	client *http.Client
}

func New(client *http.Client) *Importer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Importer{client: client}
}

// Fetch downloads link and parses it.
func (i *Importer) Fetch(ctx context.Context, link string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")

	res, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}
	return Parse(doc, res.Request.URL)
}

// Parse extracts the product from og:* tags with <title>/<meta name=description>/first <img> fallbacks.
func Parse(doc *goquery.Document, base *url.URL) (*Product, error) {
	p := &Product{
		Name:        firstNonEmpty(meta(doc, "og:title"), strings.TrimSpace(doc.Find("title").First().Text())),
		Description: firstNonEmpty(meta(doc, "og:description"), meta(doc, "description")),
		ImageURL:    meta(doc, "og:image"),
	}
	if p.ImageURL == "" {
		if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
			p.ImageURL = strings.TrimSpace(src)
		}
	}
	if p.ImageURL != "" && base != nil {
		if ref, err := url.Parse(p.ImageURL); err == nil {
			p.ImageURL = base.ResolveReference(ref).String()
		}
	}

	if p.Name == "" || p.ImageURL == "" {
		return nil, ErrNoProductData
	}
	return p, nil
}

func meta(doc *goquery.Document, key string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, key))
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf(`meta[name=%q]`, key))
	}
	content, _ := sel.First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
