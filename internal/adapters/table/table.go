// Package table renders distance results for the terminal.
package table

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/core/pathdiff"
)

// ErrUnknownFormat is returned for a table format name that is not supported.
var ErrUnknownFormat = errors.New("unknown table format")

// DefaultFormat is used when no format is requested.
const DefaultFormat = "pipe"

type renderFunc func(table.Writer) string

type format struct {
	style  *table.Style
	render renderFunc
}

func plainStyle(separateHeader bool) *table.Style {
	style := table.StyleDefault
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = separateHeader
	style.Options.SeparateRows = false
	return &style
}

func gridStyle() *table.Style {
	style := table.StyleDefault
	style.Options.SeparateRows = true
	return &style
}

func boxStyle(s table.Style) *table.Style {
	return &s
}

var formats = map[string]format{
	"pipe":     {render: table.Writer.RenderMarkdown},
	"markdown": {render: table.Writer.RenderMarkdown},
	"plain":    {style: plainStyle(false), render: table.Writer.Render},
	"simple":   {style: plainStyle(true), render: table.Writer.Render},
	"grid":     {style: gridStyle(), render: table.Writer.Render},
	"rounded":  {style: boxStyle(table.StyleRounded), render: table.Writer.Render},
	"double":   {style: boxStyle(table.StyleDouble), render: table.Writer.Render},
	"csv":      {render: table.Writer.RenderCSV},
	"tsv":      {render: table.Writer.RenderTSV},
	"html":     {render: table.Writer.RenderHTML},
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateFormat fails with ErrUnknownFormat when name is not supported.
func ValidateFormat(name string) error {
	if _, ok := formats[name]; !ok {
		return fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return nil
}

// Options controls how results are presented.
type Options struct {
	Format    string
	FullPaths bool
	Stats     bool
}

// Render writes rows as a table to w. Unless FullPaths is set, each pair is
// shown by the parts of its paths that differ.
func Render(w io.Writer, rows []domain.Result, opts Options) error {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return err
	}

	header := "Distinct Path"
	if opts.FullPaths {
		header = "Path"
	}

	tw := newWriter(opts.Format)
	tw.AppendHeader(table.Row{header, header, "Distance"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})

	for _, r := range rows {
		left, right := r.Pair.First, r.Pair.Second
		if !opts.FullPaths {
			left, right = pathdiff.Diff(r.Pair)
		}
		tw.AppendRow(table.Row{left, right, FormatDistance(r.Distance)})
	}

	if _, err := fmt.Fprintln(w, formats[opts.Format].render(tw)); err != nil {
		return err
	}

	if opts.Stats && len(rows) > 0 {
		if _, err := fmt.Fprintf(w, "\n> Average distance: %.2f\n", domain.Average(rows)); err != nil {
			return err
		}
	}
	return nil
}

// AlgorithmRow describes one registered metric.
type AlgorithmRow struct {
	Name    string
	Family  string
	Bounded bool
}

// RenderAlgorithms writes the list of metrics as a table in format.
func RenderAlgorithms(w io.Writer, rows []AlgorithmRow, format string) error {
	if format == "" {
		format = DefaultFormat
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}

	tw := newWriter(format)
	tw.AppendHeader(table.Row{"Algorithm", "Family", "Range"})
	for _, r := range rows {
		rng := "unbounded"
		if r.Bounded {
			rng = "[0, 1]"
		}
		tw.AppendRow(table.Row{r.Name, r.Family, rng})
	}
	_, err := fmt.Fprintln(w, formats[format].render(tw))
	return err
}

func newWriter(format string) table.Writer {
	tw := table.NewWriter()
	if style := formats[format].style; style != nil {
		tw.SetStyle(*style)
	}
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

// FormatDistance prints d with the fewest digits that represent it exactly.
func FormatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "inf"
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}
