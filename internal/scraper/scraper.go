package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"StockSage/internal/model"
)

// Scraper fetches company fundamentals and news pages and extracts the
// attributes embedded into the analysis prompt.
type Scraper struct {
	Client          *http.Client
	FundamentalsURL string // e.g. https://www.screener.in/company
	NewsURL         string // e.g. https://www.google.com/finance/quote
	Exchange        string
	UserAgent       string
}

// Config holds the scraper settings.
type Config struct {
	FundamentalsURL string
	NewsURL         string
	Exchange        string
	UserAgent       string
	Proxy           string
}

// New creates a Scraper with optional proxy support.
func New(cfg Config) *Scraper {
	transport := &http.Transport{}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0"
	}
	return &Scraper{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		FundamentalsURL: strings.TrimRight(cfg.FundamentalsURL, "/"),
		NewsURL:         strings.TrimRight(cfg.NewsURL, "/"),
		Exchange:        cfg.Exchange,
		UserAgent:       ua,
	}
}

func (s *Scraper) fetchDocument(ctx context.Context, u string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	return doc, nil
}

// FetchFundamentals scrapes the fundamentals page for symbol. A missing
// page or company name is a hard failure; every other attribute degrades to
// an empty value. News failures degrade to an empty mapping.
func (s *Scraper) FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	u := fmt.Sprintf("%s/%s", s.FundamentalsURL, url.PathEscape(symbol))
	log.Printf("[INFO] fetching fundamentals from %s", u)

	doc, err := s.fetchDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("stock properties: %w", err)
	}

	f, err := parseFundamentals(doc)
	if err != nil {
		return nil, err
	}
	f.Symbol = symbol

	news, err := s.FetchNews(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] news fetch failed for %s, continuing without: %v", symbol, err)
		news = map[string][]string{}
	}
	f.News = news
	return f, nil
}

// parseFundamentals extracts the company attributes from a fundamentals
// page document.
func parseFundamentals(doc *goquery.Document) (*model.Fundamentals, error) {
	name := strings.TrimSpace(doc.Find("h1.h2.shrink-text").First().Text())
	if name == "" {
		return nil, fmt.Errorf("stock name not found")
	}

	f := &model.Fundamentals{
		Name:       name,
		Properties: map[string]string{},
	}

	spans := doc.Find("div.flex.flex-align-center span")
	if spans.Length() >= 2 {
		f.Price = normalizeFigure(spans.Eq(0).Text())
		f.Change = strings.TrimSpace(spans.Eq(1).Text())
	}

	f.About = strings.TrimSpace(doc.Find("div.sub.show-more-box.about").First().Text())
	f.KeyPoints = strings.TrimSpace(doc.Find("div.sub.commentary.always-show-more-box").First().Text())
	f.Pros = strings.TrimSpace(doc.Find("div.pros").First().Text())
	f.Cons = strings.TrimSpace(doc.Find("div.cons").First().Text())
	f.Sector = strings.TrimSpace(doc.Find("div.sub").First().Text())

	doc.Find("li.flex.flex-space-between").Each(func(_ int, li *goquery.Selection) {
		key := strings.TrimSpace(li.Find("span.name").First().Text())
		value := strings.TrimSpace(li.Find("span.nowrap.value").First().Text())
		if key != "" && value != "" {
			f.Properties[key] = strings.Join(strings.Fields(value), " ")
		}
	})

	tables := doc.Find("table.data-table.responsive-text-nowrap")
	f.Financials = model.Financials{
		QuarterlyResults: tableToRecords(tables.Eq(0)),
		ProfitAndLoss:    tableToRecords(tables.Eq(1)),
		BalanceSheet:     tableToRecords(tables.Eq(2)),
		CashFlow:         tableToRecords(tables.Eq(3)),
		DebtorsRatio:     tableToRecords(tables.Eq(4)),
	}
	f.Shareholding = tableToRecords(doc.Find("table.data-table").First())

	return f, nil
}

// normalizeFigure strips currency symbols and thousand separators and
// returns a canonical numeric string. Unparsable input is returned as-is.
func normalizeFigure(raw string) string {
	raw = strings.TrimSpace(raw)
	cleaned := strings.NewReplacer("₹", "", "$", "", ",", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return raw
	}
	return d.String()
}
