package stats

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/codestreak/internal/model"
)

const (
	heatmapLevels       = 4
	heatmapLabelWidth   = 4
	heatmapCellWidth    = 2
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var (
	levelGlyphs = []string{"·", "░", "▒", "▓", "█"}
	levelColors = []string{
		"\x1b[38;5;238m",
		"\x1b[38;5;22m",
		"\x1b[38;5;28m",
		"\x1b[38;5;34m",
		"\x1b[38;5;46m",
	}
	weekdayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}
)

// Heatmap is a calendar grid of daily counts, one column per week starting
// on Sunday. Cells outside [First, Last] hold -1.
type Heatmap struct {
	Start time.Time
	First time.Time
	Last  time.Time
	Weeks [][7]int
	Max   int
}

// BuildHeatmap lays out per-day event counts between start and end inclusive.
func BuildHeatmap(events []model.Event, start, end time.Time) Heatmap {
	first := model.Day(start)
	last := model.Day(end)
	hm := Heatmap{First: first, Last: last}
	if last.Before(first) {
		return hm
	}
	hm.Start = first.AddDate(0, 0, -int(first.Weekday()))

	counts := map[string]int{}
	for _, ev := range events {
		counts[model.DayKey(ev.SolvedDate)]++
	}

	weeks := model.DaysBetween(hm.Start, last)/7 + 1
	hm.Weeks = make([][7]int, weeks)
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			day := hm.Start.AddDate(0, 0, w*7+d)
			if day.Before(first) || day.After(last) {
				hm.Weeks[w][d] = -1
				continue
			}
			c := counts[model.DayKey(day)]
			hm.Weeks[w][d] = c
			if c > hm.Max {
				hm.Max = c
			}
		}
	}
	return hm
}

// Level maps a count to an intensity between 0 and 4.
func Level(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	level := (count*heatmapLevels + maxCount - 1) / maxCount
	if level < 1 {
		level = 1
	}
	if level > heatmapLevels {
		level = heatmapLevels
	}
	return level
}

// TrimToWidth keeps the most recent weeks that fit within totalWidth columns.
func (hm Heatmap) TrimToWidth(totalWidth int) Heatmap {
	if totalWidth <= 0 {
		return hm
	}
	fit := (totalWidth - heatmapLabelWidth) / heatmapCellWidth
	if fit < 1 {
		fit = 1
	}
	if len(hm.Weeks) <= fit {
		return hm
	}
	drop := len(hm.Weeks) - fit
	out := hm
	out.Weeks = hm.Weeks[drop:]
	out.Start = hm.Start.AddDate(0, 0, drop*7)
	if out.First.Before(out.Start) {
		out.First = out.Start
	}
	return out
}

// RenderHeatmap prints the grid with month labels and a legend.
func RenderHeatmap(w io.Writer, hm Heatmap, useColor bool) error {
	if len(hm.Weeks) == 0 {
		_, err := fmt.Fprintln(w, "No days in range.")
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat(" ", heatmapLabelWidth)+monthHeader(hm)); err != nil {
		return err
	}
	for d := 0; d < 7; d++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%-*s", heatmapLabelWidth, weekdayLabels[d]))
		for _, week := range hm.Weeks {
			c := week[d]
			if c < 0 {
				row.WriteString(strings.Repeat(" ", heatmapCellWidth))
				continue
			}
			row.WriteString(cellGlyph(Level(c, hm.Max), useColor))
			row.WriteByte(' ')
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	legend := make([]string, 0, len(levelGlyphs))
	for level := range levelGlyphs {
		legend = append(legend, cellGlyph(level, useColor))
	}
	if _, err := fmt.Fprintf(w, "%sLess %s More\n\n", strings.Repeat(" ", heatmapLabelWidth), strings.Join(legend, " ")); err != nil {
		return err
	}
	return nil
}

func cellGlyph(level int, useColor bool) string {
	if !useColor {
		return levelGlyphs[level]
	}
	return levelColors[level] + levelGlyphs[level] + colorReset
}

func monthHeader(hm Heatmap) string {
	header := []rune(strings.Repeat(" ", len(hm.Weeks)*heatmapCellWidth))
	prevMonth := time.Month(0)
	nextFree := 0
	for w := range hm.Weeks {
		day := hm.Start.AddDate(0, 0, w*7)
		if day.Before(hm.First) {
			day = hm.First
		}
		if day.Month() == prevMonth {
			continue
		}
		prevMonth = day.Month()
		col := w * heatmapCellWidth
		label := []rune(day.Format("Jan"))
		if col < nextFree || col+len(label) > len(header) {
			continue
		}
		copy(header[col:], label)
		nextFree = col + len(label) + 1
	}
	return strings.TrimRight(string(header), " ")
}

// TerminalWidth returns the stdout width or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether ANSI colors should be written to w.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
