package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"EquityPulse/internal/model"
)

// YahooScraper scrapes headlines from a ticker's Yahoo Finance news page.
// It is strictly best-effort: Yahoo changes its markup without notice, so
// several selectors are tried and whatever publish times the page exposes
// are forwarded verbatim for the normalizer to deal with.
type YahooScraper struct {
	client      *resty.Client
	baseURL     string
	maxArticles int
}

// NewYahooScraper creates a Yahoo Finance headline scraper.
func NewYahooScraper(proxyURL string, maxArticles int) *YahooScraper {
	if maxArticles <= 0 {
		maxArticles = 50
	}
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooScraper{
		client:      client,
		baseURL:     "https://finance.yahoo.com",
		maxArticles: maxArticles,
	}
}

func (s *YahooScraper) Name() string { return "yahoo-scrape" }

// storySelectors are tried in order; Yahoo has used all of these layouts.
var storySelectors = []string{
	`li[data-testid="story-item"]`,
	`.js-stream-content li`,
	`div.news-stream li`,
}

// FetchArticles scrapes the ticker's news page. The from/to range is
// advisory only: the page shows recent stories without a date filter, so
// range trimming is left to the aggregation stage.
func (s *YahooScraper) FetchArticles(symbol string, _, _ time.Time) ([]model.RawArticle, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/news", s.baseURL, strings.ToUpper(symbol))
	resp, err := s.client.R().Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("scrape %s: status %d", symbol, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	var articles []model.RawArticle
	for _, selector := range storySelectors {
		doc.Find(selector).Each(func(_ int, item *goquery.Selection) {
			if len(articles) >= s.maxArticles {
				return
			}
			headline := strings.TrimSpace(item.Find("h3").First().Text())
			if headline == "" {
				headline = strings.TrimSpace(item.Find("a").First().Text())
			}
			if headline == "" {
				return
			}
			href, _ := item.Find("a").First().Attr("href")
			if strings.HasPrefix(href, "/") {
				href = s.baseURL + href
			}
			articles = append(articles, model.RawArticle{
				Published: extractPublished(item),
				Headline:  headline,
				Summary:   strings.TrimSpace(item.Find("p").First().Text()),
				Source:    "Yahoo Finance",
				URL:       href,
			})
		})
		if len(articles) > 0 {
			break
		}
	}
	return articles, nil
}

// extractPublished pulls whatever publish time the story markup carries.
// Returns an empty string when the page only shows relative times like
// "2 hours ago"; those records get dropped by the normalizer, which is the
// accepted cost of the scrape path.
func extractPublished(item *goquery.Selection) string {
	if t, ok := item.Find("time").First().Attr("datetime"); ok {
		return t
	}
	raw := strings.TrimSpace(item.Find("time").First().Text())
	if strings.Contains(raw, "ago") {
		return ""
	}
	return raw
}
