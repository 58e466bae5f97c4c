package news

import (
	"time"

	"EquityPulse/internal/model"
)

// MockProvider returns fixed article records for development and testing.
type MockProvider struct {
	Articles []model.RawArticle
	Err      error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchArticles(_ string, _, _ time.Time) ([]model.RawArticle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles, nil
}
