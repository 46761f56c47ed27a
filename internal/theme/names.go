package theme

import (
	"regexp"
	"sort"
)

var namedColors = map[string]string{
	"black":         "#000000",
	"white":         "#FFFFFF",
	"ivory":         "#FFFFF0",
	"cream":         "#FFFDD0",
	"beige":         "#F5F5DC",
	"champagne":     "#F7E7CE",
	"gold":          "#FFD700",
	"rose gold":     "#B76E79",
	"silver":        "#C0C0C0",
	"copper":        "#B87333",
	"red":           "#FF0000",
	"maroon":        "#800000",
	"burgundy":      "#800020",
	"wine":          "#722F37",
	"pink":          "#FFC0CB",
	"blush pink":    "#FEC5E5",
	"blush":         "#DE5D83",
	"coral":         "#FF7F50",
	"peach":         "#FFE5B4",
	"orange":        "#FFA500",
	"saffron":       "#F4C430",
	"mustard":       "#FFDB58",
	"yellow":        "#FFFF00",
	"green":         "#008000",
	"emerald green": "#50C878",
	"emerald":       "#50C878",
	"sage green":    "#9CAF88",
	"sage":          "#9CAF88",
	"mint":          "#98FF98",
	"olive":         "#808000",
	"teal":          "#008080",
	"turquoise":     "#40E0D0",
	"blue":          "#0000FF",
	"royal blue":    "#4169E1",
	"navy blue":     "#000080",
	"navy":          "#000080",
	"sky blue":      "#87CEEB",
	"lavender":      "#E6E6FA",
	"lilac":         "#C8A2C8",
	"purple":        "#800080",
	"magenta":       "#FF00FF",
	"fuchsia":       "#FF00FF",
	"grey":          "#808080",
	"gray":          "#808080",
	"brown":         "#A52A2A",
	"rust":          "#B7410E",
}

type namedColor struct {
	name string
	hex  string
	re   *regexp.Regexp
}

// namedByLength lists color names longest first so multi-word names claim
// their span before their last word does.
var namedByLength = func() []namedColor {
	out := make([]namedColor, 0, len(namedColors))
	for name, hex := range namedColors {
		out = append(out, namedColor{name: name, hex: hex, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].name) != len(out[j].name) {
			return len(out[i].name) > len(out[j].name)
		}
		return out[i].name < out[j].name
	})
	return out
}()
