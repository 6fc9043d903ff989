package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderMissingBar renders a completeness bar like [████░░░░]  45%
// for the non-missing fraction of a column. Green when mostly
// complete, yellow below 66%, red below 33%.
func RenderMissingBar(completePct float64, width int) string {
	if completePct < 0 {
		completePct = 0
	}
	if completePct > 1 {
		completePct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(completePct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if completePct < 0.33 {
		style = StyleRed
	} else if completePct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", completePct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}
