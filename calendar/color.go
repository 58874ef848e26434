package calendar

import (
	"crypto/md5"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GoldenAngle is 360° divided by the golden ratio squared.
const GoldenAngle = 137.50776405003785

// HueFor returns the hash hue of key in whole degrees [0, 360).
//
// The MD5 digest of the UTF-8 bytes is read as a big-endian 128-bit integer
// and reduced mod 360, so hues are stable across runs, platforms and Go
// versions.
func HueFor(key string) float64 {
	sum := md5.Sum([]byte(key))
	var h uint32
	for _, b := range sum {
		h = (h*256 + uint32(b)) % 360
	}
	return float64(h)
}

// HSL converts a hue in degrees plus saturation and lightness into a Color.
// Saturation and lightness are clamped to [0, 1].
func HSL(hue, saturation, lightness float64) Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	saturation = clamp01(saturation)
	lightness = clamp01(lightness)
	c := colorful.Hsl(hue, saturation, lightness).Clamped()
	return Color{
		Hue:        hue,
		Saturation: saturation,
		Lightness:  lightness,
		R:          channel(c.R),
		G:          channel(c.G),
		B:          channel(c.B),
	}
}

// GoldenHueFor returns the alternate hue of key: its hash hue taken as a
// count of golden-angle steps around the wheel.
func GoldenHueFor(key string) float64 {
	return math.Mod(HueFor(key)*GoldenAngle, 360)
}

// ColorFor derives the hash-algorithm color of a single key.
func ColorFor(key string, saturation, lightness float64) Color {
	return HSL(HueFor(key), saturation, lightness)
}

// AlgorithmColor derives the color of key with the given hue algorithm.
func AlgorithmColor(key string, alg HueAlgorithm, saturation, lightness float64) Color {
	if alg == HueGolden {
		return HSL(GoldenHueFor(key), saturation, lightness)
	}
	return ColorFor(key, saturation, lightness)
}

// channel scales a [0, 1] component to 0-255, truncating.
func channel(v float64) uint8 {
	return uint8(v * 255)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Palette assigns a color to every color key of one run.
type Palette struct {
	algorithm  HueAlgorithm
	saturation float64
	lightness  float64
	keys       []string
	colors     map[string]Color
}

// NewPalette computes colors for the distinct keys using the algorithm,
// saturation and lightness in opts. Each key's color depends only on the key
// and those options.
func NewPalette(keys []string, opts Options) *Palette {
	p := &Palette{
		algorithm:  opts.Algorithm,
		saturation: opts.Saturation,
		lightness:  opts.Lightness,
		colors:     make(map[string]Color, len(keys)),
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			p.keys = append(p.keys, k)
		}
	}
	sort.Strings(p.keys)

	for _, k := range p.keys {
		p.colors[k] = AlgorithmColor(k, p.algorithm, p.saturation, p.lightness)
	}
	return p
}

// PaletteFor builds the palette for the color keys of tasks.
func PaletteFor(tasks []NormalizedTask, opts Options) *Palette {
	keys := make([]string, len(tasks))
	for i, t := range tasks {
		keys[i] = t.ColorKey
	}
	return NewPalette(keys, opts)
}

// Color returns the color for key. Keys outside the palette are derived with
// the palette's algorithm.
func (p *Palette) Color(key string) Color {
	if c, ok := p.colors[key]; ok {
		return c
	}
	return AlgorithmColor(key, p.algorithm, p.saturation, p.lightness)
}

// Keys returns the distinct keys in sorted order.
func (p *Palette) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of distinct keys.
func (p *Palette) Len() int {
	return len(p.keys)
}
