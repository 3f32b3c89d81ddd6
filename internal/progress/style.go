package progress

import (
	"fmt"

	"github.com/fatih/color"
)

// palette holds the colouring functions used by the terminal sink.
type palette struct {
	bold   func(a ...any) string
	dim    func(a ...any) string
	cyan   func(a ...any) string
	green  func(a ...any) string
	red    func(a ...any) string
	yellow func(a ...any) string
}

func newPalette(noColor bool) palette {
	if noColor {
		plain := func(a ...any) string { return fmt.Sprint(a...) }
		return palette{bold: plain, dim: plain, cyan: plain, green: plain, red: plain, yellow: plain}
	}
	return palette{
		bold:   color.New(color.Bold).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
		green:  color.New(color.Bold, color.FgGreen).SprintFunc(),
		red:    color.New(color.Bold, color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}
