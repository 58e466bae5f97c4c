package model

import "time"

// RawArticle is an article record as returned by a news provider.
// Published is whatever the source produced and may be empty or unparsable;
// nothing downstream of the provider trusts it until normalization.
type RawArticle struct {
	Published string
	Headline  string
	Summary   string
	Source    string
	URL       string
}

// NormalizedArticle is a RawArticle whose publish time parsed successfully.
// Time is the equivalent UTC instant with the source offset dropped.
type NormalizedArticle struct {
	Time     time.Time
	Headline string
	Summary  string
	Source   string
	URL      string
}

// DailyHeadlines holds all headlines published on one calendar day,
// joined into a single string.
type DailyHeadlines struct {
	Day    time.Time
	Joined string
	Count  int
}
