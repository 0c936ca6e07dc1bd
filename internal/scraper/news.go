package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchNews scrapes the latest headlines for symbol, keyed by the page's
// relative timestamp strings ("2 days ago" etc.).
func (s *Scraper) FetchNews(ctx context.Context, symbol string) (map[string][]string, error) {
	u := fmt.Sprintf("%s/%s:%s?hl=en", s.NewsURL, url.PathEscape(symbol), url.PathEscape(s.Exchange))
	log.Printf("[INFO] fetching news from %s", u)

	doc, err := s.fetchDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("stock news: %w", err)
	}
	return parseNews(doc), nil
}

// parseNews extracts headline/timestamp pairs from a quote page document.
func parseNews(doc *goquery.Document) map[string][]string {
	items := doc.Find("div.Yfwt5")
	times := doc.Find("div.Adak")

	news := map[string][]string{}
	items.Each(func(i int, item *goquery.Selection) {
		key := "Unknown Time"
		if i < times.Length() {
			key = strings.TrimSpace(times.Eq(i).Text())
		}
		news[key] = append(news[key], strings.TrimSpace(item.Text()))
	})
	return news
}
