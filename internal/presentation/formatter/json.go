package formatter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/yuzuha/screenscribe/internal/core/model"
)

// JSONFormatter emits the complete aggregation result, including the
// focus-scoped totals the markdown document does not break out.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format implements Formatter.
func (f *JSONFormatter) Format(report *model.DayReport) error {
	data, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
