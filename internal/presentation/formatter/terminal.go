package formatter

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/util"
)

// TerminalFormatter prints a compact ranking summary to stdout after a
// run, padded for display width so CJK window titles line up.
type TerminalFormatter struct {
	opts  Options
	width int
}

// NewTerminalFormatter creates a terminal formatter sized to the
// current terminal, with a fallback width for pipes.
func NewTerminalFormatter(opts Options) *TerminalFormatter {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 60 {
		width = 74
	}
	return &TerminalFormatter{opts: opts, width: width}
}

// Format implements Formatter.
func (f *TerminalFormatter) Format(report *model.DayReport) error {
	fmt.Println(strings.Repeat("=", f.width))
	fmt.Printf("Activity Report: %s\n", report.Day)
	if report.HasFocusScore {
		fmt.Printf("Average Focus Score: %s / 10\n", util.FormatScore(report.FocusScore))
	}
	fmt.Println(strings.Repeat("=", f.width))

	if len(report.Apps) == 0 {
		fmt.Println("No activity recorded")
		return nil
	}

	nameWidth := 0
	for _, app := range report.Apps {
		if w := util.GetDisplayWidth(app.App); w > nameWidth {
			nameWidth = w
		}
	}
	maxName := f.width - 24
	if nameWidth > maxName {
		nameWidth = maxName
	}

	fmt.Println(util.FormatSectionTitle("App Usage"))
	for _, app := range report.Apps {
		name := util.TruncateString(app.App, nameWidth)
		line := fmt.Sprintf("  %s  %s",
			util.PadString(name, nameWidth, true),
			util.PadString(util.FormatMinutes(app.Seconds), 8, false))
		if focusSeconds := focusFor(report.FocusApps, app.App); focusSeconds > 0 {
			line += fmt.Sprintf("  (focus %s)", util.FormatMinutes(focusSeconds))
		}
		fmt.Println(line)
	}

	fmt.Printf("\nTimeline entries: %d", len(report.Timeline))
	if report.SkippedRows > 0 {
		fmt.Printf("  (%d rows skipped)", report.SkippedRows)
	}
	fmt.Println()
	return nil
}

func focusFor(focusApps []model.AppUsage, app string) float64 {
	for _, fa := range focusApps {
		if fa.App == app {
			return fa.Seconds
		}
	}
	return 0
}
