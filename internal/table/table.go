// Package table turns an in-memory list into the rows of one table page:
// search, then filter, then sort, then paginate.
package table

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Column describes one named column of T
type Column[T any] struct {
	Key   string
	Title string
	// Value renders the cell; it is also what search and filters match on
	Value func(T) string
	// Compare orders two rows by this column. Nil compares Value
	// case-insensitively.
	Compare func(a, b T) int
}

func (c Column[T]) value(row T) string {
	if c.Value == nil {
		return ""
	}
	return c.Value(row)
}

func (c Column[T]) compare(a, b T) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return strings.Compare(strings.ToLower(c.value(a)), strings.ToLower(c.value(b)))
}

// Direction is a sort direction
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SearchMode selects how the search text is matched against cells
type SearchMode int

const (
	// SearchSubstring matches a case-insensitive substring
	SearchSubstring SearchMode = iota
	// SearchFuzzy matches the search characters in order, case-insensitively
	SearchFuzzy
)

// Sort orders rows by a single column
type Sort struct {
	Column    string
	Direction Direction
}

// Options controls Process. The zero value returns rows unchanged.
type Options[T any] struct {
	Columns []Column[T]

	Search string
	// SearchColumns restricts search to these column keys; empty means all
	SearchColumns []string
	SearchMode    SearchMode

	// Filters maps a column key to accepted values. A row passes when it
	// matches any value of every listed column.
	Filters map[string][]string

	Sort *Sort

	// PageSize 0 disables pagination
	PageSize int
	// Page is 1-indexed
	Page int
}

// Result is one processed page
type Result[T any] struct {
	Rows []T
	// NumPages is ceil(Total/PageSize), or 1 when pagination is off
	NumPages int
	// Total counts rows after search and filtering
	Total int
}

// Process applies search, filters, sort and pagination in that order.
// rows is never modified.
func Process[T any](rows []T, opts Options[T]) Result[T] {
	columns := make(map[string]Column[T], len(opts.Columns))
	for _, c := range opts.Columns {
		columns[c.Key] = c
	}

	out := search(rows, opts, columns)
	out = filter(out, opts.Filters, columns)
	out = sortRows(out, opts.Sort, columns)

	total := len(out)
	if opts.PageSize <= 0 {
		return Result[T]{Rows: out, NumPages: 1, Total: total}
	}

	numPages := (total + opts.PageSize - 1) / opts.PageSize
	start := (opts.Page - 1) * opts.PageSize
	if opts.Page < 1 || start >= total {
		return Result[T]{Rows: []T{}, NumPages: numPages, Total: total}
	}
	end := min(start+opts.PageSize, total)
	return Result[T]{Rows: out[start:end], NumPages: numPages, Total: total}
}

func search[T any](rows []T, opts Options[T], columns map[string]Column[T]) []T {
	needle := strings.TrimSpace(opts.Search)
	if needle == "" {
		return slices.Clone(rows)
	}

	searchable := opts.Columns
	if len(opts.SearchColumns) > 0 {
		searchable = make([]Column[T], 0, len(opts.SearchColumns))
		for _, key := range opts.SearchColumns {
			if c, ok := columns[key]; ok {
				searchable = append(searchable, c)
			}
		}
	}

	match := func(cell string) bool {
		return strings.Contains(strings.ToLower(cell), strings.ToLower(needle))
	}
	if opts.SearchMode == SearchFuzzy {
		match = func(cell string) bool { return fuzzy.MatchFold(needle, cell) }
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, c := range searchable {
			if match(c.value(row)) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func filter[T any](rows []T, filters map[string][]string, columns map[string]Column[T]) []T {
	type clause struct {
		column Column[T]
		values []string
	}
	var clauses []clause
	for key, values := range filters {
		c, ok := columns[key]
		if !ok || len(values) == 0 {
			continue
		}
		clauses = append(clauses, clause{column: c, values: values})
	}
	if len(clauses) == 0 {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, cl := range clauses {
			if !slices.Contains(cl.values, cl.column.value(row)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func sortRows[T any](rows []T, s *Sort, columns map[string]Column[T]) []T {
	if s == nil {
		return rows
	}
	c, ok := columns[s.Column]
	if !ok {
		return rows
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		if s.Direction == Desc {
			return c.compare(b, a)
		}
		return c.compare(a, b)
	})
	return rows
}
