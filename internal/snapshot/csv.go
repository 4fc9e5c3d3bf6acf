// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/serptrack/pkg/types"
)

// headers defines the CSV column order. Columns mirror the raw provider
// response; derived columns are recomputed on load and never persisted.
var headers = []string{
	"rank",
	"displayLink",
	"title",
	"link",
	"snippet",
	"searchTerms",
	"totalResults",
	"searchTime",
	"queryTime",
}

// Header returns a copy of the CSV column names.
func Header() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// WriteCSV writes the table to w as UTF-8 CSV with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range t.Rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.DisplayLink,
			r.Title,
			r.Link,
			r.Snippet,
			r.SearchTerms,
			strconv.FormatInt(r.TotalResults, 10),
			strconv.FormatFloat(r.SearchTime, 'f', -1, 64),
			r.QueryTime,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path, creating or truncating the file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a snapshot table from r. The reader is tolerant of
// externally produced files: an incidental unnamed index column (empty
// header cell or "Unnamed: 0") is dropped, column order is taken from the
// header row, unknown columns are ignored, and a missing or unparsable
// queryTime becomes the UnknownTime sentinel. A file without a header row
// is an error; a header-only file yields an empty table.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty CSV file")
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	// Map column name to position, skipping the incidental index artifact.
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" || name == "Unnamed: 0" {
			continue
		}
		cols[name] = i
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []types.Result
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		rank, _ := strconv.Atoi(field(record, "rank"))
		totalResults, _ := strconv.ParseInt(field(record, "totalResults"), 10, 64)
		searchTime, _ := strconv.ParseFloat(field(record, "searchTime"), 64)

		rows = append(rows, types.Result{
			Rank:         rank,
			DisplayLink:  field(record, "displayLink"),
			Title:        field(record, "title"),
			Link:         field(record, "link"),
			Snippet:      field(record, "snippet"),
			SearchTerms:  field(record, "searchTerms"),
			TotalResults: totalResults,
			SearchTime:   searchTime,
			QueryTime:    NormalizeQueryTime(field(record, "queryTime")),
		})
	}

	return New(rows), nil
}

// ReadFile parses a snapshot table from the CSV file at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// ReadFiles loads and merges one or more CSV files into a unified table.
func ReadFiles(paths ...string) (*Table, error) {
	tables := make([]*Table, 0, len(paths))
	for _, path := range paths {
		t, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return Merge(tables...), nil
}
