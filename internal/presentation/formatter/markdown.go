package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuzuha/screenscribe/internal/core/model"
	"github.com/yuzuha/screenscribe/internal/util"
)

// Section headings and placeholders are part of the output contract;
// prior reports depend on these exact strings.
const (
	appRankingHeading   = "## 📊 App Usage Ranking"
	focusRankingHeading = "## 🎯 Focus Window Ranking"
	winRankingHeading   = "## 📑 Window Usage Ranking"
	timelineHeading     = "## ⏱ Detailed Timeline"

	noFocusPlaceholder  = "- (no focus activity)"
	noWindowPlaceholder = "- (no window activity)"
)

// MarkdownFormatter renders the day report as the Markdown document
// written next to prior reports. Rendering is pure: identical input
// yields byte-identical output.
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a markdown formatter with the given
// render options.
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// Render produces the full document.
func (f *MarkdownFormatter) Render(report *model.DayReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Activity Report: %s\n\n", report.Day)
	if report.HasFocusScore {
		fmt.Fprintf(&b, "Average Focus Score: %s / 10\n\n", util.FormatScore(report.FocusScore))
	}

	b.WriteString(appRankingHeading + "\n")
	for _, app := range report.Apps {
		fmt.Fprintf(&b, "- **%s**: %s\n", app.App, util.FormatMinutes(app.Seconds))
	}

	f.renderWindowSection(&b, focusRankingHeading, report.FocusWindows, noFocusPlaceholder)
	f.renderWindowSection(&b, winRankingHeading, report.Windows, noWindowPlaceholder)

	b.WriteString("\n" + timelineHeading + "\n")
	currentHour := ""
	for _, entry := range report.Timeline {
		hour := entry.Clock[:2]
		if hour != currentHour {
			fmt.Fprintf(&b, "\n### %s:00\n", hour)
			currentHour = hour
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", entry.Clock, entry.App, entry.Window)
	}

	return b.String()
}

func (f *MarkdownFormatter) renderWindowSection(b *strings.Builder, heading string, windows []model.WindowUsage, placeholder string) {
	if f.opts.TopWindows > 0 {
		fmt.Fprintf(b, "\n%s (Top %d)\n", heading, f.opts.TopWindows)
	} else {
		fmt.Fprintf(b, "\n%s\n", heading)
	}

	ranked := windows
	if f.opts.TopWindows > 0 && len(ranked) > f.opts.TopWindows {
		ranked = ranked[:f.opts.TopWindows]
	}

	written := 0
	for _, win := range ranked {
		if util.WholeMinutes(win.Seconds) < f.opts.MinMinutes {
			continue
		}
		fmt.Fprintf(b, "- **%s**: %s\n", util.FormatMinutes(win.Seconds), win.Key.Display())
		written++
	}
	if written == 0 {
		b.WriteString(placeholder + "\n")
	}
}

// Format implements Formatter by printing the document to stdout.
func (f *MarkdownFormatter) Format(report *model.DayReport) error {
	_, err := fmt.Fprint(os.Stdout, f.Render(report))
	return err
}
