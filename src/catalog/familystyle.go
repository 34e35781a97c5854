package catalog

import (
	"fmt"
	"strings"
)

// Families lists the accepted family names in canonical form.
var Families = []string{
	"classic", "duotone", "sharp", "sharp-duotone", "brands",
	"chisel", "etch", "jelly", "jelly-duo", "jelly-fill",
	"notdog", "notdog-duo", "slab", "slab-press", "thumbprint", "whiteboard",
}

// Styles lists the accepted style names in canonical form.
var Styles = []string{
	"solid", "regular", "light", "thin", "brands", "duotone", "semibold",
}

// wireFamilies maps canonical family names to upstream GraphQL enum values.
// Hyphens become underscores since enum names cannot contain them.
var wireFamilies = map[string]string{
	"classic":       "CLASSIC",
	"duotone":       "DUOTONE",
	"sharp":         "SHARP",
	"sharp-duotone": "SHARP_DUOTONE",
	"brands":        "BRANDS",
	"chisel":        "CHISEL",
	"etch":          "ETCH",
	"jelly":         "JELLY",
	"jelly-duo":     "JELLY_DUO",
	"jelly-fill":    "JELLY_FILL",
	"notdog":        "NOTDOG",
	"notdog-duo":    "NOTDOG_DUO",
	"slab":          "SLAB",
	"slab-press":    "SLAB_PRESS",
	"thumbprint":    "THUMBPRINT",
	"whiteboard":    "WHITEBOARD",
}

var wireStyles = map[string]string{
	"solid":    "SOLID",
	"regular":  "REGULAR",
	"light":    "LIGHT",
	"thin":     "THIN",
	"brands":   "BRANDS",
	"duotone":  "DUOTONE",
	"semibold": "SEMIBOLD",
}

// WireFamily returns the upstream enum for a family, case-insensitively.
func WireFamily(family string) (string, bool) {
	v, ok := wireFamilies[strings.ToLower(family)]
	return v, ok
}

// WireStyle returns the upstream enum for a style, case-insensitively.
func WireStyle(style string) (string, bool) {
	v, ok := wireStyles[strings.ToLower(style)]
	return v, ok
}

// IsFamily reports whether family is one of Families.
func IsFamily(family string) bool {
	_, ok := WireFamily(family)
	return ok
}

// IsStyle reports whether style is one of Styles.
func IsStyle(style string) bool {
	_, ok := WireStyle(style)
	return ok
}

// svgFilterArgs renders the svgs(...) argument list for a family/style
// restriction. Only table values reach the document.
func svgFilterArgs(filter []FamilyStyle) (string, error) {
	if len(filter) == 0 {
		return "", nil
	}
	items := make([]string, 0, len(filter))
	for _, fs := range filter {
		fam, ok := WireFamily(fs.Family)
		if !ok {
			return "", fmt.Errorf("unknown family %q", fs.Family)
		}
		sty, ok := WireStyle(fs.Style)
		if !ok {
			return "", fmt.Errorf("unknown style %q", fs.Style)
		}
		items = append(items, fmt.Sprintf("{ family: %s, style: %s }", fam, sty))
	}
	return "(filter: { familyStyles: [" + strings.Join(items, ", ") + "] })", nil
}
