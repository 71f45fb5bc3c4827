package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMoney renders a dollar amount rounded to whole dollars with
// thousands separators.
func FormatMoney(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}

// FormatNumber drops a trailing ".0" so whole numbers print without decimals.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatRange renders lo and hi with unit, collapsing equal bounds into one
// value. Both zero renders "--".
func FormatRange(lo, hi float64, render func(float64) string) string {
	if lo == 0 && hi == 0 {
		return "--"
	}
	if lo == hi {
		return render(lo)
	}
	return render(lo) + " - " + render(hi)
}

// FormatHours renders an hour count like "12.5h".
func FormatHours(v float64) string {
	return FormatNumber(v) + "h"
}

// FormatDays renders a day count like "30d".
func FormatDays(v float64) string {
	return FormatNumber(v) + "d"
}

// OptionalRange renders a pair of optional bounds, treating a missing bound
// as the other one.
func OptionalRange(lo, hi *float64, render func(float64) string) string {
	switch {
	case lo == nil && hi == nil:
		return "--"
	case lo == nil:
		return render(*hi)
	case hi == nil:
		return render(*lo)
	}
	return FormatRange(*lo, *hi, render)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date relative to now.
func HumanDate(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// Plural picks the singular or plural noun for n.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
