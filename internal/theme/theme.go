package theme

import (
	"bytes"
	"fmt"
	"image"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/entity"
)

// Sampling and brightness thresholds (brightness is 0..255, Rec. 601 luma).
const (
	SampleSize   = 64
	BucketShift  = 4
	MinAlpha     = 128
	TooDark      = 40
	TooLight     = 230
	MaxTextHexes = 3
)

// Fallback palettes used when the dominant image color is unusable.
var (
	DarkPalette = entity.ThemeColors{
		Primary: "#1F2A44", Secondary: "#C9A227", Accent: "#F5F1E6",
		Source: entity.ColorSourceDark,
	}
	LightPalette = entity.ThemeColors{
		Primary: "#8C6A4F", Secondary: "#D4AF37", Accent: "#3B3B3B",
		Source: entity.ColorSourceLight,
	}
)

type rgb struct{ r, g, b uint8 }

func (c rgb) hex() string { return fmt.Sprintf("#%02X%02X%02X", c.r, c.g, c.b) }

func (c rgb) brightness() float64 {
	return 0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)
}

func (c rgb) mix(t rgb, w float64) rgb {
	f := func(a, b uint8) uint8 { return uint8(float64(a)*(1-w) + float64(b)*w + 0.5) }
	return rgb{f(c.r, t.r), f(c.g, t.g), f(c.b, t.b)}
}

func (c rgb) complement() rgb { return rgb{255 - c.r, 255 - c.g, 255 - c.b} }

var (
	black = rgb{0, 0, 0}
	white = rgb{255, 255, 255}
)

// Resolve picks the invite palette: explicit hex codes in the text win, then
// the image palette, then named colors in the text. Nil when nothing is found.
func Resolve(text string, payload []byte, mediaType string) *entity.ThemeColors {
	if tc, ok := FromTextHex(text); ok {
		return &tc
	}
	if len(payload) > 0 && constants.MapMediaTypeToFormat(mediaType, true) == constants.IMAGE {
		if tc, err := FromImage(payload, mediaType); err == nil {
			return &tc
		}
	}
	if tc, ok := FromTextNamed(text); ok {
		return &tc
	}
	return nil
}

// FromImage derives a palette from the most common colors of a downsampled
// copy of the image.
func FromImage(payload []byte, mediaType string) (entity.ThemeColors, error) {
	img, err := decode(payload, mediaType)
	if err != nil {
		return entity.ThemeColors{}, err
	}
	ranked := dominant(imaging.Fit(img, SampleSize, SampleSize, imaging.Box))
	if len(ranked) == 0 {
		return entity.ThemeColors{}, fmt.Errorf("image has no opaque pixels")
	}
	switch b := ranked[0].brightness(); {
	case b < TooDark:
		return DarkPalette, nil
	case b > TooLight:
		return LightPalette, nil
	}
	tc := palette(ranked)
	tc.Source = entity.ColorSourceImage
	return tc, nil
}

func decode(payload []byte, mediaType string) (image.Image, error) {
	if constants.NormalizeMediaType(mediaType) == constants.MediaTypeWebP {
		img, err := webp.Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

type bucket struct {
	key        int
	n          int
	rs, gs, bs int
}

// dominant buckets pixels by their high bits and returns bucket averages,
// most frequent first.
func dominant(img *image.NRGBA) []rgb {
	buckets := map[int]*bucket{}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
		if a < MinAlpha {
			continue
		}
		key := int(r>>BucketShift)<<8 | int(g>>BucketShift)<<4 | int(b>>BucketShift)
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{key: key}
			buckets[key] = bk
		}
		bk.n++
		bk.rs += int(r)
		bk.gs += int(g)
		bk.bs += int(b)
	}
	list := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		list = append(list, bk)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].n != list[j].n {
			return list[i].n > list[j].n
		}
		return list[i].key < list[j].key
	})
	out := make([]rgb, len(list))
	for i, bk := range list {
		out[i] = rgb{uint8(bk.rs / bk.n), uint8(bk.gs / bk.n), uint8(bk.bs / bk.n)}
	}
	return out
}

// palette turns one to three colors into a full palette, deriving the missing
// slots from the primary.
func palette(colors []rgb) entity.ThemeColors {
	p := colors[0]
	var sec, acc rgb
	switch {
	case len(colors) >= 3:
		sec, acc = colors[1], colors[2]
	case len(colors) == 2:
		sec, acc = colors[1], p.complement()
	default:
		if p.brightness() > 128 {
			sec = p.mix(black, 0.35)
		} else {
			sec = p.mix(white, 0.35)
		}
		acc = p.complement()
	}
	return entity.ThemeColors{Primary: p.hex(), Secondary: sec.hex(), Accent: acc.hex()}
}

var reHex = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

func parseHex(h string) rgb {
	h = strings.TrimPrefix(h, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgb{}
	}
	return rgb{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// FromTextHex builds a palette from explicit #RRGGBB / #RGB codes.
func FromTextHex(text string) (entity.ThemeColors, bool) {
	var colors []rgb
	seen := map[rgb]bool{}
	for _, m := range reHex.FindAllString(text, -1) {
		c := parseHex(m)
		if seen[c] {
			continue
		}
		seen[c] = true
		colors = append(colors, c)
		if len(colors) == MaxTextHexes {
			break
		}
	}
	if len(colors) == 0 {
		return entity.ThemeColors{}, false
	}
	tc := palette(colors)
	tc.Source = entity.ColorSourceTextHex
	return tc, true
}

// FromTextNamed builds a palette from color names, preferring the longest
// name at any position ("rose gold" over "gold").
func FromTextNamed(text string) (entity.ThemeColors, bool) {
	lower := strings.ToLower(text)
	type hit struct {
		pos int
		c   rgb
	}
	var hits []hit
	taken := make([]bool, len(lower))
	for _, nc := range namedByLength {
		for _, loc := range nc.re.FindAllStringIndex(lower, -1) {
			if anyTaken(taken, loc[0], loc[1]) {
				continue
			}
			for i := loc[0]; i < loc[1]; i++ {
				taken[i] = true
			}
			hits = append(hits, hit{pos: loc[0], c: parseHex(nc.hex)})
		}
	}
	if len(hits) == 0 {
		return entity.ThemeColors{}, false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	var colors []rgb
	seen := map[rgb]bool{}
	for _, h := range hits {
		if seen[h.c] {
			continue
		}
		seen[h.c] = true
		colors = append(colors, h.c)
		if len(colors) == MaxTextHexes {
			break
		}
	}
	tc := palette(colors)
	tc.Source = entity.ColorSourceTextNamed
	return tc, true
}

func anyTaken(taken []bool, a, b int) bool {
	for i := a; i < b; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}
