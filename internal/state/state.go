// Package state persists lightweight run bookkeeping between invocations:
// when each ticker last built successfully and what came out of it.
package state

import (
	"encoding/json"
	"os"
	"time"
)

// TickerState records the outcome of the most recent successful build.
type TickerState struct {
	LastBuiltAt     time.Time `json:"last_built_at"`
	RowCount        int       `json:"row_count"`
	ArticleCount    int       `json:"article_count"`
	DroppedArticles int       `json:"dropped_articles"`
}

// RunState maps ticker to its last build outcome.
type RunState struct {
	Tickers   map[string]TickerState `json:"tickers"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Load reads the run state from a JSON file. Returns a zero state if the
// file doesn't exist.
func Load(filePath string) (*RunState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &RunState{Tickers: map[string]TickerState{}}, nil
		}
		return nil, err
	}
	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	if st.Tickers == nil {
		st.Tickers = map[string]TickerState{}
	}
	return &st, nil
}

// Save writes the run state to a JSON file.
func Save(filePath string, st *RunState) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// Mark records a successful build for one ticker.
func (s *RunState) Mark(ticker string, rows, articles, dropped int) {
	if s.Tickers == nil {
		s.Tickers = map[string]TickerState{}
	}
	s.Tickers[ticker] = TickerState{
		LastBuiltAt:     time.Now().UTC(),
		RowCount:        rows,
		ArticleCount:    articles,
		DroppedArticles: dropped,
	}
}
