// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"github.com/pdiddy/serptrack/internal/snapshot"
)

// Bin is one sentiment histogram bucket over [From, To).
type Bin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// HistogramBins buckets the sentiment column into nbins equal-width bins
// over [-1, 1]. The final bin is closed on both ends so a sentiment of
// exactly 1 is counted. nbins below 1 defaults to 20.
func HistogramBins(t *snapshot.Table, nbins int) []Bin {
	if nbins < 1 {
		nbins = 20
	}

	width := 2.0 / float64(nbins)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i].From = -1 + float64(i)*width
		bins[i].To = bins[i].From + width
	}

	for _, r := range t.Rows {
		idx := int((r.Sentiment + 1) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= nbins {
			idx = nbins - 1
		}
		bins[idx].Count++
	}
	return bins
}

// RankPoint is one marker of the rank-vs-domain scatter.
type RankPoint struct {
	Domain      string  `json:"domain"`
	Rank        int     `json:"rank"`
	BubbleSize  float64 `json:"bubbleSize"`
	Sentiment   float64 `json:"sentiment"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	SearchTerms string  `json:"searchTerms"`
}

// Frame is one animation frame of the rank scatter: all points captured at
// a single queryTime.
type Frame struct {
	Timestamp string      `json:"timestamp"`
	Points    []RankPoint `json:"points"`
}

// RankFrames groups the table's rows by canonical queryTime, ascending, one
// frame per distinct timestamp. Rows carrying the unknown-timestamp
// sentinel are excluded since they cannot be placed on the timeline.
func RankFrames(t *snapshot.Table) []Frame {
	byTime := make(map[string][]RankPoint)
	for _, r := range t.Rows {
		if r.QueryTime == snapshot.UnknownTime || r.QueryTime == "" {
			continue
		}
		byTime[r.QueryTime] = append(byTime[r.QueryTime], RankPoint{
			Domain:      r.DisplayLink,
			Rank:        r.Rank,
			BubbleSize:  r.BubbleSize,
			Sentiment:   r.Sentiment,
			Title:       r.Title,
			Link:        r.Link,
			SearchTerms: r.SearchTerms,
		})
	}

	timestamps := t.Timestamps()
	frames := make([]Frame, 0, len(timestamps))
	for _, ts := range timestamps {
		frames = append(frames, Frame{Timestamp: ts, Points: byTime[ts]})
	}
	return frames
}

// TitleLengthPoint is one marker of the title-length-vs-rank scatter.
type TitleLengthPoint struct {
	Domain      string  `json:"domain"`
	TitleLength int     `json:"titleLength"`
	Rank        int     `json:"rank"`
	BubbleSize  float64 `json:"bubbleSize"`
	Sentiment   float64 `json:"sentiment"`
}

// TitleLengthPoints projects the table onto the title-length scatter,
// preserving row order.
func TitleLengthPoints(t *snapshot.Table) []TitleLengthPoint {
	out := make([]TitleLengthPoint, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, TitleLengthPoint{
			Domain:      r.DisplayLink,
			TitleLength: r.TitleLength,
			Rank:        r.Rank,
			BubbleSize:  r.BubbleSize,
			Sentiment:   r.Sentiment,
		})
	}
	return out
}
