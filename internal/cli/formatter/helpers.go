package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/todoer/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RenderProgress renders a bar like [████░░░░]  45% for a 0-100 value.
// Green above 66, yellow from 33, red below.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RelativeDateFrom returns a human-friendly date relative to now, by
// calendar day.
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(domain.DateOnly(t).Sub(domain.DateOnly(now)).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// Points renders a leisure point amount without trailing zeros.
func Points(p float64) string {
	s := fmt.Sprintf("%.2f", p)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " pts"
}

// ShortID trims ids to 8 characters for tables.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func checkMark(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
