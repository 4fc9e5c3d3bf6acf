// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the serptrack pipeline.
package types

// Result is one entry of a search engine results page: a ranked link
// returned by a provider for a single query at a single point in time.
// The raw fields mirror the provider response; the derived fields are
// filled in by the analysis stage and are zero until then.
type Result struct {
	// Rank is the 1-based position of the entry within its query's results.
	Rank int `json:"rank" yaml:"rank"`

	// DisplayLink is the domain shown for the entry (e.g. "example.com").
	DisplayLink string `json:"displayLink" yaml:"displayLink"`

	// Title is the entry title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Link is the full URL of the entry.
	Link string `json:"link" yaml:"link"`

	// Snippet is the short description shown under the title.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// SearchTerms is the query phrase that produced this entry.
	SearchTerms string `json:"searchTerms" yaml:"searchTerms"`

	// TotalResults is the provider's estimate of matching documents.
	TotalResults int64 `json:"totalResults,omitempty" yaml:"totalResults,omitempty"`

	// SearchTime is the provider-reported query duration in seconds.
	SearchTime float64 `json:"searchTime,omitempty" yaml:"searchTime,omitempty"`

	// QueryTime is the capture timestamp in "2006-01-02 15:04:05" form,
	// or the sentinel "unknown" when the source value could not be parsed.
	QueryTime string `json:"queryTime" yaml:"queryTime"`

	// Sentiment is the lexicon polarity of Title, in [-1, 1].
	Sentiment float64 `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`

	// SentimentPositive is Sentiment shifted into [0, 2] for visual sizing.
	SentimentPositive float64 `json:"sentimentPositive,omitempty" yaml:"sentiment_positive,omitempty"`

	// BubbleSize is the plot marker size, SentimentPositive*20 + 10.
	BubbleSize float64 `json:"bubbleSize,omitempty" yaml:"bubble_size,omitempty"`

	// TitleLength is the character (rune) count of Title.
	TitleLength int `json:"titleLength,omitempty" yaml:"title_length,omitempty"`
}

// FilterField selects which field the result filter matches against.
type FilterField string

const (
	FieldSearchTerms FilterField = "searchTerms"
	FieldTitle       FilterField = "title"
	FieldBoth        FilterField = "both"
)

// Valid reports whether f is one of the recognized filter fields.
func (f FilterField) Valid() bool {
	switch f {
	case FieldSearchTerms, FieldTitle, FieldBoth:
		return true
	}
	return false
}
