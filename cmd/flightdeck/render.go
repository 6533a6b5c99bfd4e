package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/adapter"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/table"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// viewFlags are the table flags shared by every list command
type viewFlags struct {
	search   string
	sort     string
	filters  []string
	page     int
	pageSize int
	fuzzy    bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "q", "", "only rows with a cell containing this text")
	flags.StringVar(&f.sort, "sort", "", "sort by column, e.g. registration or registration:desc")
	flags.StringArrayVar(&f.filters, "filter", nil, "column=value; repeat to accept several values")
	flags.IntVar(&f.page, "page", 1, "page to show (1-indexed)")
	flags.IntVar(&f.pageSize, "page-size", -1, "rows per page, 0 shows everything (default from config)")
	flags.BoolVar(&f.fuzzy, "fuzzy", false, "match the search characters in order instead of as a substring")
}

// options turns the flags into table options over cols
func options[T any](f *viewFlags, cfg *adapter.Config, cols []table.Column[T]) (table.Options[T], error) {
	sort, err := parseSort(f.sort)
	if err != nil {
		return table.Options[T]{}, err
	}
	filters, err := parseFilters(f.filters)
	if err != nil {
		return table.Options[T]{}, err
	}

	pageSize := f.pageSize
	if pageSize < 0 {
		pageSize = cfg.Table.PageSize
	}
	mode := table.SearchSubstring
	if f.fuzzy || cfg.UI.FuzzyFilter {
		mode = table.SearchFuzzy
	}

	return table.Options[T]{
		Columns:    cols,
		Search:     f.search,
		SearchMode: mode,
		Filters:    filters,
		Sort:       sort,
		PageSize:   pageSize,
		Page:       f.page,
	}, nil
}

// parseSort reads "column" or "column:asc|desc"
func parseSort(s string) (*table.Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	column, dir, _ := strings.Cut(s, ":")
	sort := &table.Sort{Column: column}
	switch strings.ToLower(dir) {
	case "", "asc":
	case "desc":
		sort.Direction = table.Desc
	default:
		return nil, fmt.Errorf("invalid sort direction %q: want asc or desc", dir)
	}
	return sort, nil
}

// parseFilters groups "column=value" pairs by column
func parseFilters(pairs []string) (map[string][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string][]string)
	for _, p := range pairs {
		column, value, ok := strings.Cut(p, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q: want column=value", p)
		}
		out[column] = append(out[column], value)
	}
	return out, nil
}

// parseID reads a saved record id from a positional argument
func parseID(s string) (domain.RecordID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return domain.RecordID{}, fmt.Errorf("invalid id %q: want a positive integer", s)
	}
	return domain.Saved(n), nil
}

// renderTable processes rows and prints one page with a summary line
func renderTable[T any](w io.Writer, rows []T, opts table.Options[T]) {
	res := table.Process(rows, opts)

	headers := make([]string, len(opts.Columns))
	for i, c := range opts.Columns {
		headers[i] = c.Title
	}
	cells := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells[i] = make([]string, len(opts.Columns))
		for j, c := range opts.Columns {
			cells[i][j] = c.Value(row)
		}
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, dimStyle.Render(summary(opts.Page, res)))
}

func summary[T any](page int, res table.Result[T]) string {
	if res.NumPages <= 1 {
		return fmt.Sprintf("%d rows", res.Total)
	}
	return fmt.Sprintf("page %d/%d · %d rows", page, res.NumPages, res.Total)
}
