// Package report renders item statistics as plain text, styled tables or
// JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sadopc/itemstat/internal/model"
	"github.com/sadopc/itemstat/internal/sequence"
	"github.com/sadopc/itemstat/internal/stat"
)

// Format selects the output layout.
type Format string

const (
	FormatPlain Format = "plain"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPlain, FormatTable, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q: must be one of plain, table, json", s)
}

const (
	defaultWidth = 80
	barWidth     = 20
	rule         = "====================================="
)

// Printer writes reports to an output stream.
type Printer struct {
	out    io.Writer
	format Format
	theme  Theme
	width  int
}

// NewPrinter returns a printer. A width of 0 uses 80 columns.
func NewPrinter(out io.Writer, format Format, theme Theme, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{out: out, format: format, theme: theme, width: width}
}

// Row is one entry of a listing. Stat is nil when Err is set.
type Row struct {
	Item model.Item
	Stat *stat.ItemStat
	Err  error
}

type rowJSON struct {
	Summary
	Error string `json:"error,omitempty"`
}

// SequenceSummary adds the frame layout to the summary of a sequence.
type SequenceSummary struct {
	Summary
	Pattern string `json:"pattern"`
	Ranges  string `json:"ranges"`
	Frames  int64  `json:"frames"`
	Missing int64  `json:"missing"`
}

// Stat prints the statistics of one item.
func (p *Printer) Stat(st *stat.ItemStat) error {
	switch p.format {
	case FormatJSON:
		return p.writeJSON(NewSummary(st))
	case FormatTable:
		return p.writeString(p.statTable(st, nil))
	}

	ew := &errWriter{w: p.out}
	writeHarness(ew, st)
	return ew.err
}

// Sequence prints the statistics of a sequence with its frame layout.
func (p *Printer) Sequence(seq sequence.Sequence, st *stat.ItemStat) error {
	info := SequenceSummary{
		Summary: NewSummary(st),
		Pattern: seq.StandardPattern(),
		Ranges:  sequence.FormatRanges(seq.Ranges),
		Frames:  seq.NbFiles(),
		Missing: seq.NbMissingFiles(),
	}

	switch p.format {
	case FormatJSON:
		return p.writeJSON(info)
	case FormatTable:
		return p.writeString(p.statTable(st, [][2]string{
			{"Pattern", info.Pattern},
			{"Ranges", info.Ranges},
			{"Frames", strconv.FormatInt(info.Frames, 10)},
			{"Missing", strconv.FormatInt(info.Missing, 10)},
		}))
	}

	ew := &errWriter{w: p.out}
	ew.WriteString("Sequence : " + seq.String() + "\n")
	ew.WriteString("Frames : " + strconv.FormatInt(info.Frames, 10) + "\n")
	ew.WriteString("Missing : " + strconv.FormatInt(info.Missing, 10) + "\n")
	writeHarness(ew, st)
	return ew.err
}

// Listing prints the rows of a browsed directory.
func (p *Printer) Listing(rows []Row) error {
	switch p.format {
	case FormatJSON:
		out := make([]rowJSON, 0, len(rows))
		for _, r := range rows {
			out = append(out, toRowJSON(r))
		}
		return p.writeJSON(out)
	case FormatTable:
		return p.writeString(p.listingTable(rows))
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%s\t%v\n", r.Item.Kind(), r.Item, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t\n", r.Item.Kind(), r.Stat.Size(), r.Stat.RealSize(), r.Item)
	}
	return tw.Flush()
}

func toRowJSON(r Row) rowJSON {
	if r.Err != nil {
		return rowJSON{
			Summary: Summary{Path: r.Item.Path(), Kind: r.Item.Kind().String()},
			Error:   r.Err.Error(),
		}
	}
	return rowJSON{Summary: NewSummary(r.Stat)}
}

// writeHarness prints the six values in the historical layout.
func writeHarness(ew *errWriter, st *stat.ItemStat) {
	ew.WriteString(rule + "\n")
	ew.WriteString("Size : " + strconv.FormatInt(st.Size(), 10) + "\n")
	ew.WriteString("Real Size : " + strconv.FormatInt(st.RealSize(), 10) + "\n")
	ew.WriteString("Size on disk : " + strconv.FormatInt(st.SizeOnDisk(), 10) + "\n")
	ew.WriteString("Full Hard links : " + strconv.FormatInt(st.FullHardLinkCount(), 10) + "\n")
	ew.WriteString("Hardlinks : " + strconv.FormatFloat(st.HardLinkCount(), 'f', -1, 64) + "\n")
	ew.WriteString("Device : " + strconv.FormatUint(st.DeviceID(), 10) + "\n")
}

func (p *Printer) statTable(st *stat.ItemStat, extra [][2]string) string {
	t := p.theme
	pairs := [][2]string{
		{"Path", st.Path()},
		{"Kind", st.Kind().String()},
		{"Size", sizeValue(st.Size())},
		{"Real size", sizeValue(st.RealSize())},
		{"Size on disk", sizeValue(st.SizeOnDisk())},
		{"Full hard links", strconv.FormatInt(st.FullHardLinkCount(), 10)},
		{"Hard links", strconv.FormatFloat(st.HardLinkCount(), 'f', -1, 64)},
		{"Device", deviceValue(st)},
		{"Owner", st.UserName() + ":" + st.GroupName()},
		{"Permissions", st.Permissions().String()},
		{"Modified", st.ModTime().Format("2006-01-02 15:04:05")},
	}
	if st.Kind() == model.Folder || st.Kind() == model.Sequence {
		pairs = append(pairs,
			[2]string{"Min size", sizeValue(st.MinSize())},
			[2]string{"Max size", sizeValue(st.MaxSize())},
			[2]string{"Entries", fmt.Sprintf("%s files, %s folders, %s links",
				FormatCount(st.Files()), FormatCount(st.Folders()), FormatCount(st.Links()))},
		)
	}
	pairs = append(pairs, extra...)
	if st.Errors() > 0 {
		pairs = append(pairs, [2]string{"Skipped", strconv.FormatInt(st.Errors(), 10)})
	}

	labelWidth := 0
	for _, kv := range pairs {
		labelWidth = max(labelWidth, len(kv[0]))
	}
	valueWidth := max(p.width-labelWidth-6, 10)

	lines := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		label := t.Label.Render(PadRight(kv[0], labelWidth))
		value := t.Value.Render(Truncate(kv[1], valueWidth))
		if kv[0] == "Skipped" {
			value = t.Faint.Render(kv[1])
		}
		lines = append(lines, label+"  "+value)
	}
	return t.Border.Render(strings.Join(lines, "\n")) + "\n"
}

func (p *Printer) listingTable(rows []Row) string {
	t := p.theme

	var largest int64
	for _, r := range rows {
		if r.Stat != nil && r.Stat.Size() > largest {
			largest = r.Stat.Size()
		}
	}

	const (
		kindWidth = 8
		sizeWidth = 10
	)
	nameWidth := max(p.width-kindWidth-sizeWidth-barWidth-8, 10)

	var b strings.Builder
	header := PadRight("KIND", kindWidth) + "  " + PadLeft("SIZE", sizeWidth) + "  " +
		PadRight("", barWidth) + "  " + "NAME"
	b.WriteString(t.Header.Render(PadRight(header, p.width-2)) + "\n")

	for _, r := range rows {
		name := r.Item.Filename()
		if r.Item.Kind() == model.Folder {
			name += "/"
		}
		if seq := r.Item.Sequence(); seq != nil {
			name = seq.String()
		}
		name = Truncate(name, nameWidth)

		style := t.NameStyle(r.Item.Kind())
		if r.Item.Kind() == model.File {
			style = t.CategoryStyle(name)
		}

		kind := PadRight(r.Item.Kind().String(), kindWidth)
		if r.Err != nil {
			b.WriteString(kind + "  " + PadLeft("-", sizeWidth) + "  " + PadRight("", barWidth) + "  " +
				style.Render(name) + "  " + t.Faint.Render(r.Err.Error()) + "\n")
			continue
		}

		size := r.Stat.Size()
		bar := t.Bar(barWidth, Percent(size, largest)/100)
		b.WriteString(kind + "  " + t.SizeText.Render(PadLeft(FormatSize(size), sizeWidth)) + "  " +
			bar + "  " + style.Render(name) + "\n")
	}
	return b.String()
}

func sizeValue(n int64) string {
	return FormatSize(n) + " (" + strconv.FormatInt(n, 10) + " bytes)"
}

func deviceValue(st *stat.ItemStat) string {
	v := strconv.FormatUint(st.DeviceID(), 10)
	if st.CrossesDevices() {
		devs := st.Devices()
		parts := make([]string, len(devs))
		for i, d := range devs {
			parts[i] = strconv.FormatUint(d, 10)
		}
		v += " (spans " + strings.Join(parts, ", ") + ")"
	}
	return v
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	ew := &errWriter{w: p.out}
	_, _ = ew.Write(data)
	ew.WriteString("\n")
	return ew.err
}

func (p *Printer) writeString(s string) error {
	ew := &errWriter{w: p.out}
	ew.WriteString(s)
	return ew.err
}
