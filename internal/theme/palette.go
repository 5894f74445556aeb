package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color — цвет палитры: hex (#rrggbb) и прозрачность 0..1.
type Color struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

// Scheme — производная цветовая схема интерфейса.
type Scheme struct {
	Dark               bool  `json:"dark"`
	Primary            Color `json:"primary"`
	Secondary          Color `json:"secondary"`
	Tertiary           Color `json:"tertiary"`
	Background         Color `json:"background"`
	Surface            Color `json:"surface"`
	OnPrimary          Color `json:"on_primary"`
	OnBackground       Color `json:"on_background"`
	OnSurface          Color `json:"on_surface"`
	PrimaryContainer   Color `json:"primary_container"`
	OnPrimaryContainer Color `json:"on_primary_container"`
}

// Фиксированные цвета схем.
var (
	lightTertiary   = mustHex("#E91E63")
	lightBackground = mustHex("#FDFDFD")
	lightSurface    = mustHex("#FFFFFF")
	lightOn         = mustHex("#1C1B1F")

	darkTertiary   = mustHex("#F48FB1")
	darkBackground = mustHex("#121016")
	darkSurface    = mustHex("#1E1C24")
	darkOn         = mustHex("#E6E1E5")
	darkOnLight    = mustHex("#381E72")

	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// DeriveScheme строит схему из состояния темы.
// Тихий режим обесцвечивает seed на 70%; тёмная схема осветляет тёмные seed в 1.5 раза;
// высокий контраст заменяет фон и текст на чистые чёрный и белый.
func DeriveScheme(s ThemeState) Scheme {
	seed := s.Selected.Seed()
	if s.IsQuietMode {
		seed = desaturate(seed, 0.7)
	}

	var scheme Scheme
	if s.IsDarkMode {
		scheme = darkScheme(seed)
	} else {
		scheme = lightScheme(seed)
	}

	if s.IsHighContrast {
		bg, fg := white, black
		if s.IsDarkMode {
			bg, fg = black, white
		}
		scheme.Background = solid(bg)
		scheme.Surface = solid(bg)
		scheme.OnBackground = solid(fg)
		scheme.OnSurface = solid(fg)
	}

	return scheme
}

func lightScheme(seed colorful.Color) Scheme {
	onPrimary := white
	if luminance(seed) > 0.5 {
		onPrimary = lightOn
	}

	onContainer := seed
	if luminance(seed) > 0.5 {
		onContainer = lightOn
	}

	return Scheme{
		Primary:            solid(seed),
		Secondary:          withAlpha(seed, 0.7),
		Tertiary:           solid(lightTertiary),
		Background:         solid(lightBackground),
		Surface:            solid(lightSurface),
		OnPrimary:          solid(onPrimary),
		OnBackground:       solid(lightOn),
		OnSurface:          solid(lightOn),
		PrimaryContainer:   withAlpha(seed, 0.15),
		OnPrimaryContainer: solid(onContainer),
	}
}

func darkScheme(seed colorful.Color) Scheme {
	primary := seed
	if luminance(seed) < 0.3 {
		primary = lighten(seed, 1.5)
	}

	onPrimary := white
	if luminance(primary) > 0.5 {
		onPrimary = darkOnLight
	}

	return Scheme{
		Dark:               true,
		Primary:            solid(primary),
		Secondary:          withAlpha(primary, 0.7),
		Tertiary:           solid(darkTertiary),
		Background:         solid(darkBackground),
		Surface:            solid(darkSurface),
		OnPrimary:          solid(onPrimary),
		OnBackground:       solid(darkOn),
		OnSurface:          solid(darkOn),
		PrimaryContainer:   withAlpha(primary, 0.2),
		OnPrimaryContainer: solid(lighten(primary, 0.8)),
	}
}

// luminance — относительная яркость по линейным каналам sRGB.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// lighten умножает каналы на factor с насыщением в 1.
func lighten(c colorful.Color, factor float64) colorful.Color {
	return colorful.Color{
		R: math.Min(c.R*factor, 1),
		G: math.Min(c.G*factor, 1),
		B: math.Min(c.B*factor, 1),
	}
}

// desaturate смешивает цвет с серым той же яркости: 0 — исходный, 1 — полностью серый.
func desaturate(c colorful.Color, factor float64) colorful.Color {
	l := luminance(c)
	return c.BlendRgb(colorful.Color{R: l, G: l, B: l}, factor)
}

func solid(c colorful.Color) Color {
	return Color{Hex: strings.ToUpper(c.Clamped().Hex()), Alpha: 1}
}

func withAlpha(c colorful.Color, a float64) Color {
	out := solid(c)
	out.Alpha = a
	return out
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("theme: bad color %q: %v", s, err))
	}

	return c
}
