package report

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/nhdewitt/drivescope/internal/drive"
)

const (
	columnGap  = "    "
	numColumns = 8
	totalLabel = "Total"
)

// ColumnWidths holds the display width of each table column.
type ColumnWidths struct {
	Path      int
	Kind      int
	Total     int
	Available int
	Files     int
	Dirs      int
	Seconds   int
	Time      int
}

func DefaultColumnWidths() ColumnWidths {
	return ColumnWidths{
		Path:      20,
		Kind:      8,
		Total:     10,
		Available: 15,
		Files:     12,
		Dirs:      12,
		Seconds:   10,
		Time:      13,
	}
}

func (c ColumnWidths) sum() int {
	return c.Path + c.Kind + c.Total + c.Available + c.Files + c.Dirs + c.Seconds + c.Time
}

// SeparatorWidth is the length of the table's separator line.
func (c ColumnWidths) SeparatorWidth() int {
	return c.sum() + len(columnGap)*(numColumns-1)
}

// Totals are the column sums of a set of records.
type Totals struct {
	Files          uint64
	Dirs           uint64
	TotalBytes     uint64
	AvailableBytes uint64
	// LongestPath is the display width of the widest RootPath.
	LongestPath int
}

// Summarize folds records into their column totals in one pass.
func Summarize(records []drive.Record) Totals {
	var t Totals
	for _, r := range records {
		t.LongestPath = max(t.LongestPath, runewidth.StringWidth(r.RootPath))
		t.Files += r.NumFiles
		t.Dirs += r.NumDirs
		t.TotalBytes += r.TotalBytes
		t.AvailableBytes += r.AvailableBytes
	}
	return t
}

// SortByRoot returns a copy of records in byte-wise RootPath order. Equal
// paths keep their input order.
func SortByRoot(records []drive.Record) []drive.Record {
	out := make([]drive.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RootPath < out[j].RootPath
	})
	return out
}

// Table renders records as an aligned text table with a totals row.
type Table struct {
	Widths ColumnWidths
	Color  bool
}

type cell struct {
	text  string
	right bool
	style *lipgloss.Style
}

// Render writes the table for records to w. The path column is sized to
// the longest path; records are left in their input order. total is the
// wall time of the whole run.
func (t Table) Render(w io.Writer, records []drive.Record, total time.Duration) error {
	sum := Summarize(records)

	widths := t.Widths
	widths.Path = max(sum.LongestPath, runewidth.StringWidth(totalLabel))

	st := newStyles(w, t.Color)
	var b strings.Builder

	b.WriteString(row(widths,
		cell{text: "Path", style: st.header},
		cell{text: "Type", style: st.header},
		cell{text: "Total Size", right: true, style: st.header},
		cell{text: "Available Space", right: true, style: st.header},
		cell{text: "Files", right: true, style: st.header},
		cell{text: "Dirs", right: true, style: st.header},
		cell{text: "Time (s)", right: true, style: st.header},
		cell{text: "Time", right: true, style: st.header},
	))

	sep := cell{text: strings.Repeat("-", widths.SeparatorWidth()), style: st.separator}.render(0) + "\n"
	b.WriteString(sep)

	for _, r := range SortByRoot(records) {
		b.WriteString(row(widths,
			cell{text: r.RootPath},
			cell{text: r.Kind.String()},
			cell{text: FormatSize(r.TotalBytes), right: true},
			cell{text: FormatSize(r.AvailableBytes), right: true},
			cell{text: FormatCount(r.NumFiles), right: true},
			cell{text: FormatCount(r.NumDirs), right: true},
			cell{text: FormatSeconds(r.Elapsed), right: true},
			cell{text: FormatDuration(r.Elapsed), right: true},
		))
	}

	b.WriteString(sep)
	b.WriteString(row(widths,
		cell{text: totalLabel, style: st.total},
		cell{},
		cell{text: FormatSize(sum.TotalBytes), right: true},
		cell{text: FormatSize(sum.AvailableBytes), right: true},
		cell{text: FormatCount(sum.Files), right: true},
		cell{text: FormatCount(sum.Dirs), right: true},
		cell{text: FormatSeconds(total), right: true},
		cell{text: FormatDuration(total), right: true},
	))

	_, err := io.WriteString(w, b.String())
	return err
}

func row(widths ColumnWidths, cells ...cell) string {
	ws := []int{
		widths.Path, widths.Kind, widths.Total, widths.Available,
		widths.Files, widths.Dirs, widths.Seconds, widths.Time,
	}

	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.render(ws[i])
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ") + "\n"
}

// render pads the plain text to width before styling so escape sequences
// don't count toward alignment.
func (c cell) render(width int) string {
	fill := strings.Repeat(" ", max(0, width-runewidth.StringWidth(c.text)))

	text := c.text
	if c.style != nil && text != "" {
		text = c.style.Render(text)
	}

	if c.right {
		return fill + text
	}
	return text + fill
}

// styles are nil when color is off.
type styles struct {
	header    *lipgloss.Style
	separator *lipgloss.Style
	total     *lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{}
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)

	header := r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("4"))
	separator := r.NewStyle().Foreground(lipgloss.Color("2"))
	total := r.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

	return styles{
		header:    &header,
		separator: &separator,
		total:     &total,
	}
}
