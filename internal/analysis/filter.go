// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"regexp"
	"strings"

	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

// Filter returns the subset of rows whose selected field matches keyword
// as a case-insensitive regular expression. A keyword that does not
// compile is matched as a literal substring instead. The empty keyword
// matches every row. Filtering is idempotent: applying the same keyword
// and field to the result returns the same set.
func Filter(t *snapshot.Table, keyword string, field types.FilterField) *snapshot.Table {
	if keyword == "" {
		return t.Clone()
	}

	re, err := regexp.Compile("(?i)" + keyword)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
	}

	match := func(r types.Result) bool {
		switch field {
		case types.FieldSearchTerms:
			return re.MatchString(r.SearchTerms)
		case types.FieldTitle:
			return re.MatchString(r.Title)
		default:
			return re.MatchString(r.SearchTerms) || re.MatchString(r.Title)
		}
	}

	var rows []types.Result
	for _, r := range t.Rows {
		if match(r) {
			rows = append(rows, r)
		}
	}
	return snapshot.New(rows)
}

// ParseFilterField maps an operator-supplied selector to a FilterField.
// The human-facing names "Search Terms", "Title", and "Both" are accepted
// alongside the wire names; unknown values default to matching both fields.
func ParseFilterField(s string) types.FilterField {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "searchterms":
		return types.FieldSearchTerms
	case "title":
		return types.FieldTitle
	default:
		return types.FieldBoth
	}
}
