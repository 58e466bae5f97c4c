package news

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const newsPage = `<html><body><ul>
<li data-testid="story-item">
  <h3>Shares climb after earnings</h3>
  <a href="/news/shares-climb.html">link</a>
  <time datetime="2024-01-02T14:00:00Z">Jan 2</time>
  <p>Quarterly results beat expectations.</p>
</li>
<li data-testid="story-item">
  <h3>Analyst downgrade</h3>
  <a href="https://example.com/downgrade">link</a>
  <time>3 hours ago</time>
</li>
<li data-testid="story-item">
  <h3></h3>
</li>
</ul></body></html>`

func TestYahooScraperParsesStories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote/AAPL/news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(newsPage))
	}))
	defer srv.Close()

	s := NewYahooScraper("", 10)
	s.baseURL = srv.URL

	articles, err := s.FetchArticles("aapl", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles (headline-less item skipped), got %d", len(articles))
	}

	if articles[0].Headline != "Shares climb after earnings" {
		t.Errorf("unexpected headline: %q", articles[0].Headline)
	}
	if articles[0].Published != "2024-01-02T14:00:00Z" {
		t.Errorf("expected datetime attr passthrough, got %q", articles[0].Published)
	}
	if articles[0].URL != srv.URL+"/news/shares-climb.html" {
		t.Errorf("relative link not absolutized: %q", articles[0].URL)
	}
	if articles[0].Summary != "Quarterly results beat expectations." {
		t.Errorf("unexpected summary: %q", articles[0].Summary)
	}

	// relative "ago" times are unusable and forwarded as empty
	if articles[1].Published != "" {
		t.Errorf("expected empty published for relative time, got %q", articles[1].Published)
	}
}

func TestYahooScraperRespectsMaxArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(newsPage))
	}))
	defer srv.Close()

	s := NewYahooScraper("", 1)
	s.baseURL = srv.URL

	articles, err := s.FetchArticles("AAPL", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected max 1 article, got %d", len(articles))
	}
}
