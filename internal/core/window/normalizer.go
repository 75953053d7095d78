// Package window normalizes raw window titles for de-duplication and
// display. Browsers and many desktop apps append their own name to the
// title ("Report - Google Chrome"); stripped titles collapse what is
// really the same document into one usage key.
package window

import "strings"

// knownBrowsers lists applications whose chrome convention appends
// " - <BrowserName>" to every page title. Order is fixed so the first
// matching rule wins deterministically.
var knownBrowsers = []string{
	"Google Chrome",
	"Microsoft Edge",
	"Mozilla Firefox",
	"Brave",
	"Vivaldi",
	"Opera",
	"Arc",
}

// Placeholder replaces empty titles in every downstream key and report.
const Placeholder = "Unknown"

// Normalize strips application-chrome suffixes from a raw window title.
// At most one browser suffix rule applies; the app's own " - <app>"
// suffix is stripped independently afterwards. Pure and deterministic.
func Normalize(app, rawTitle string) string {
	title := strings.TrimSpace(rawTitle)

	for _, browser := range knownBrowsers {
		if suffix := " - " + browser; strings.HasSuffix(title, suffix) {
			title = strings.TrimSuffix(title, suffix)
			break
		}
	}

	if suffix := " - " + app; app != "" && strings.HasSuffix(title, suffix) {
		title = strings.TrimSuffix(title, suffix)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Placeholder
	}
	return title
}
