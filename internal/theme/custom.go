package theme

import (
	"fmt"
	"strings"
)

// Mood — настроение из дневника.
type Mood string

const (
	MoodCalm    Mood = "CALM"
	MoodExcited Mood = "EXCITED"
	MoodAnxious Mood = "ANXIOUS"
	MoodFocused Mood = "FOCUSED"
	MoodTired   Mood = "TIRED"
)

// Neurotype — нейротип для подбора контраста слоёв.
type Neurotype string

const (
	NeurotypeGeneral Neurotype = "GENERAL"
	NeurotypeAutism  Neurotype = "AUTISM"
	NeurotypeADHD    Neurotype = "ADHD"
)

var moodPrimary = map[Mood]string{
	MoodCalm:    "#5A8D8F",
	MoodExcited: "#9C775F",
	MoodAnxious: "#6F797B",
	MoodFocused: "#5A6F9C",
	MoodTired:   "#837F8F",
}

// Фон и поверхность по нейротипу.
var neurotypeLayers = map[Neurotype][2]string{
	NeurotypeAutism:  {"#F7F7F7", "#FFFFFF"},
	NeurotypeADHD:    {"#F0F5FA", "#FFFBF0"},
	NeurotypeGeneral: {"#E8F0F3", "#F5FFFF"},
}

// CustomPalette — приглушённая палитра дневника настроения.
type CustomPalette struct {
	Primary    Color `json:"primary"`
	Secondary  Color `json:"secondary"`
	Background Color `json:"background"`
	Surface    Color `json:"surface"`
	OnSurface  Color `json:"on_surface"`
}

// ParseMood разбирает настроение без учёта регистра.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := moodPrimary[m]; !ok {
		return "", fmt.Errorf("unknown mood %q", s)
	}

	return m, nil
}

// ParseNeurotype разбирает нейротип без учёта регистра.
func ParseNeurotype(s string) (Neurotype, error) {
	n := Neurotype(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := neurotypeLayers[n]; !ok {
		return "", fmt.Errorf("unknown neurotype %q", s)
	}

	return n, nil
}

// GenerateCustomPalette подбирает палитру по настроению и нейротипу.
// Неизвестные значения трактуются как CALM и GENERAL.
func GenerateCustomPalette(mood Mood, neurotype Neurotype) CustomPalette {
	hex, ok := moodPrimary[mood]
	if !ok {
		hex = moodPrimary[MoodCalm]
	}
	layers, ok := neurotypeLayers[neurotype]
	if !ok {
		layers = neurotypeLayers[NeurotypeGeneral]
	}

	primary := mustHex(hex)

	return CustomPalette{
		Primary:    solid(primary),
		Secondary:  withAlpha(primary, 0.7),
		Background: solid(mustHex(layers[0])),
		Surface:    solid(mustHex(layers[1])),
		OnSurface:  solid(mustHex("#1F1F1F")),
	}
}
