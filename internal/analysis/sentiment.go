// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis computes derived metrics, filters, and chart data over
// unified snapshot tables. All operations are pure with respect to their
// inputs except Derive, which fills in the derived columns of a table copy.
package analysis

import (
	"github.com/jonreiter/govader"
)

// Scorer assigns a lexicon-based sentiment polarity to result titles.
// The zero Scorer is not usable; construct with NewScorer.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer builds a scorer over the VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity of text in [-1, 1]. Empty or whitespace-only
// text scores neutral (0) rather than erroring; out-of-range lexicon output
// is clamped.
func (s *Scorer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	compound := s.analyzer.PolarityScores(text).Compound
	if compound > 1 {
		return 1
	}
	if compound < -1 {
		return -1
	}
	return compound
}
