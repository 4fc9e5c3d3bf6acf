// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"unicode/utf8"

	"github.com/pdiddy/serptrack/internal/snapshot"
)

// Derive returns a copy of the table with the derived columns filled in:
// sentiment polarity of the title in [-1, 1], the shifted-positive
// sentiment in [0, 2], the bubble size used for plot marker scaling, and
// the title length in characters. Raw columns are never touched. Missing
// titles score neutral.
func Derive(t *snapshot.Table, scorer *Scorer) *snapshot.Table {
	out := t.Clone()
	for i := range out.Rows {
		r := &out.Rows[i]
		r.Sentiment = scorer.Score(r.Title)
		r.SentimentPositive = r.Sentiment + 1
		r.BubbleSize = r.SentimentPositive*20 + 10
		r.TitleLength = utf8.RuneCountInString(r.Title)
	}
	return out
}
