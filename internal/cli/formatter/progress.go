package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad renders a unit-load bar like [████░░░░] 12/15 against the
// term ceiling. The bar is green inside [min, max], yellow below min and
// red above max.
func RenderLoad(units, minUnits, maxUnits, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if maxUnits > 0 {
		pct = float64(units) / float64(maxUnits)
	}
	pct = min(1, max(0, pct))

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case units > maxUnits:
		style = StyleRed
	case units < minUnits:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), units, maxUnits)
}
