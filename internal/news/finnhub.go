package news

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"EquityPulse/internal/model"
)

// FinnhubProvider fetches company news from the Finnhub REST API.
type FinnhubProvider struct {
	client *resty.Client
	apiKey string
}

// NewFinnhubProvider creates a Finnhub news provider. The base URL is
// overridable for tests.
func NewFinnhubProvider(apiKey, baseURL, proxyURL string) *FinnhubProvider {
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &FinnhubProvider{client: client, apiKey: apiKey}
}

func (p *FinnhubProvider) Name() string { return "finnhub" }

// finnhubNews is one item of the company-news response.
type finnhubNews struct {
	Category string `json:"category"`
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// FetchArticles returns the ticker's company news between from and to.
// Items without a publish timestamp are passed through with an empty
// Published field and left to the normalizer to drop and count.
func (p *FinnhubProvider) FetchArticles(symbol string, from, to time.Time) ([]model.RawArticle, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	resp, err := p.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  p.apiKey,
		}).
		Get("/company-news")
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("finnhub: status %d: %s", resp.StatusCode(), resp.String())
	}

	var items []finnhubNews
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("parse news response: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(items))
	for _, it := range items {
		published := ""
		if it.DateTime > 0 {
			published = time.Unix(it.DateTime, 0).UTC().Format("2006-01-02 15:04:05")
		}
		articles = append(articles, model.RawArticle{
			Published: published,
			Headline:  it.Headline,
			Summary:   it.Summary,
			Source:    it.Source,
			URL:       it.URL,
		})
	}
	return articles, nil
}
