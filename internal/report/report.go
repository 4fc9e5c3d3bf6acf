// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the four dashboard views of a result table as a
// single self-contained HTML page: the sentiment histogram, the rank
// scatter with one series per snapshot timestamp, the title-length
// scatter, and the title word cloud. The dashboard server and the analyze
// command share this renderer.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pdiddy/serptrack/internal/analysis"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

const (
	chartWidth  = "1100px"
	chartHeight = "500px"

	defaultHistogramBins  = 20
	defaultWordCloudLimit = 100
)

// Render writes the full dashboard page for the table to w.
func Render(w io.Writer, t *snapshot.Table, cfg types.AnalysisConfig) error {
	page := components.NewPage()
	page.PageTitle = "SERP Tracking Dashboard"
	page.AddCharts(
		SentimentHistogram(t, cfg.HistogramBins),
		RankScatter(t),
		TitleLengthScatter(t),
		WordCloud(t, cfg.WordCloudLimit),
	)
	return page.Render(w)
}

// WriteFile renders the dashboard page to a file.
func WriteFile(path string, t *snapshot.Table, cfg types.AnalysisConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := Render(f, t, cfg); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// SentimentHistogram charts the distribution of sentiment scores over the
// fixed [-1, 1] range. nbins of zero or less uses the default of 20.
func SentimentHistogram(t *snapshot.Table, nbins int) *charts.Bar {
	if nbins <= 0 {
		nbins = defaultHistogramBins
	}
	bins := analysis.HistogramBins(t, nbins)

	labels := make([]string, 0, len(bins))
	values := make([]opts.BarData, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("%.2f", b.From))
		values = append(values, opts.BarData{Value: b.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Sentiment distribution"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sentiment"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "results"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("results", values)
	return bar
}

// RankScatter charts rank against domain, one series per snapshot timestamp
// so the legend steps through the frames of the run. Marker size follows
// the bubble size column.
func RankScatter(t *snapshot.Table) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Rank by domain over time"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "domain"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rank"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	for _, frame := range analysis.RankFrames(t) {
		data := make([]opts.ScatterData, 0, len(frame.Points))
		for _, p := range frame.Points {
			data = append(data, opts.ScatterData{
				Value:      []interface{}{p.Domain, p.Rank},
				SymbolSize: int(p.BubbleSize),
			})
		}
		scatter.AddSeries(frame.Timestamp, data)
	}
	return scatter
}

// TitleLengthScatter charts result title length against rank.
func TitleLengthScatter(t *snapshot.Table) *charts.Scatter {
	points := analysis.TitleLengthPoints(t)

	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{
			Value:      []interface{}{p.TitleLength, p.Rank},
			SymbolSize: int(p.BubbleSize),
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Title length vs rank"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "title length"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rank"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter.AddSeries("results", data)
	return scatter
}

// WordCloud charts the most frequent words in the result titles. limit of
// zero or less uses the default of 100.
func WordCloud(t *snapshot.Table, limit int) *charts.WordCloud {
	if limit <= 0 {
		limit = defaultWordCloudLimit
	}
	words := analysis.WordFrequencies(t, limit)

	data := make([]opts.WordCloudData, 0, len(words))
	for _, wc := range words {
		data = append(data, opts.WordCloudData{Name: wc.Word, Value: wc.Count})
	}

	cloud := charts.NewWordCloud()
	cloud.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Title word cloud"}),
	)
	cloud.AddSeries("words", data).SetSeriesOptions(
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{SizeRange: []float32{14, 80}}),
	)
	return cloud
}
