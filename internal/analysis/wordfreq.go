// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/serptrack/internal/snapshot"
)

// WordCount is one word-cloud entry: a lowercased token and how many times
// it appears across the filtered titles.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// stopwords are excluded from the word cloud. Short English function words
// dominate title text and carry no signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "how": {}, "in": {}, "is": {}, "it": {},
	"of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"what": {}, "which": {}, "with": {}, "you": {}, "your": {},
}

// WordFrequencies tokenizes the titles of the table and returns up to limit
// word counts, most frequent first. Ties break alphabetically so output is
// deterministic. A limit of zero or less means no cap.
func WordFrequencies(t *snapshot.Table, limit int) []WordCount {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		for _, word := range tokenize(r.Title) {
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// tokenize lowercases text and splits it into letter/digit runs, dropping
// stopwords and single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var out []string
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}
