package renderer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"EquityPulse/internal/model"
)

// FormatBuildReport renders a one-build summary for logs and stdout.
func FormatBuildReport(ds *model.Dataset) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("EquityPulse build | %s | %s\n", ds.Ticker, ds.BuiltAt.Format("2006-01-02 15:04")))

	if len(ds.Rows) == 0 {
		b.WriteString("  no price data (degraded run)\n")
		return b.String()
	}

	first := ds.Rows[0].Time.UTC().Format(time.DateOnly)
	last := ds.Rows[len(ds.Rows)-1].Time.UTC().Format(time.DateOnly)
	b.WriteString(fmt.Sprintf("  rows: %d (%s .. %s)\n", len(ds.Rows), first, last))

	matched := 0
	for _, row := range ds.Rows {
		if row.Matched() {
			matched++
		}
	}
	b.WriteString(fmt.Sprintf("  headline coverage: %d/%d days\n", matched, len(ds.Rows)))
	b.WriteString(fmt.Sprintf("  articles: %d kept, %d dropped\n", ds.ArticleCount, ds.DroppedArticles))

	lastRSI := ds.Rows[len(ds.Rows)-1].RSI
	if math.IsNaN(lastRSI) {
		b.WriteString("  latest RSI: n/a (flat window)\n")
	} else {
		b.WriteString(fmt.Sprintf("  latest RSI: %.1f\n", lastRSI))
	}
	return b.String()
}
