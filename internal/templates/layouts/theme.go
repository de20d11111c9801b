package layouts

import (
	"fmt"
	"regexp"
	"strings"
)

// Palette is the set of colors a page is themed with.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
}

// DefaultPalette is the league's own colors.
var DefaultPalette = Palette{
	Primary:   "#7A1F2B",
	Secondary: "#D4A017",
	Accent:    "#1F3A5F",
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func themeCSSVars(palette Palette) string {
	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;}",
		colorOrDefault(palette.Primary, DefaultPalette.Primary),
		colorOrDefault(palette.Secondary, DefaultPalette.Secondary),
		colorOrDefault(palette.Accent, DefaultPalette.Accent),
	)
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !hexColorPattern.MatchString(trimmed) {
		return fallback
	}
	return trimmed
}
