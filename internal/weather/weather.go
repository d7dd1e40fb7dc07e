// Package weather rolls daily weather from fixed climate bands through an
// injectable dice roller.
package weather

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Level grades wind and precipitation. Wind runs none/light/strong,
// precipitation none/light/heavy.
type Level string

const (
	LevelNone   Level = "none"
	LevelLight  Level = "light"
	LevelStrong Level = "strong"
	LevelHeavy  Level = "heavy"
)

// Form is what falls when precipitation falls.
type Form string

const (
	FormRain       Form = "rain"
	FormSnow       Form = "snow"
	FormRainOrSnow Form = "rain/snow"
)

// band is one climate-season row: the average low and high in Fahrenheit and
// the modifier applied to the precipitation roll.
type band struct {
	low, high, precipMod int
}

var climateData = map[string]map[string]band{
	"cold-arid": {
		"spring": {38, 64, -4}, "summer": {58, 92, -5}, "fall": {39, 69, -4}, "winter": {25, 46, -3},
	},
	"cold-desert": {
		"spring": {30, 54, -5}, "summer": {51, 77, -5}, "fall": {30, 58, -5}, "winter": {6, 28, -5},
	},
	"continental": {
		"spring": {34, 48, 0}, "summer": {58, 74, 0}, "fall": {44, 56, 0}, "winter": {17, 32, 0},
	},
	"hot-arid": {
		"spring": {52, 78, -4}, "summer": {64, 92, -4}, "fall": {58, 77, -4}, "winter": {41, 62, -3},
	},
	"hot-desert": {
		"spring": {63, 90, -5}, "summer": {77, 102, -5}, "fall": {66, 84, -5}, "winter": {43, 66, -5},
	},
	"ice-cap": {
		"spring": {-90, -78, -5}, "summer": {-36, -16, -5}, "fall": {-82, -60, -5}, "winter": {-95, -80, -5},
	},
	"mediterranean": {
		"spring": {48, 65, 1}, "summer": {61, 78, -4}, "fall": {54, 69, 1}, "winter": {41, 57, 1},
	},
	"monsoon": {
		"spring": {72, 92, -4}, "summer": {69, 86, 5}, "fall": {69, 88, 3}, "winter": {66, 90, -5},
	},
	"oceanic": {
		"spring": {44, 56, 1}, "summer": {57, 72, -2}, "fall": {47, 57, 1}, "winter": {37, 44, 1},
	},
	"rainforest": {
		"spring": {74, 92, 3}, "summer": {72, 91, -1}, "fall": {73, 91, 4}, "winter": {73, 90, 3},
	},
	"sub-arctic": {
		"spring": {29, 45, -5}, "summer": {52, 66, -3}, "fall": {29, 41, -2}, "winter": {11, 23, -5},
	},
	"sub-polar": {
		"spring": {37, 45, 0}, "summer": {48, 55, 0}, "fall": {42, 49, 1}, "winter": {35, 42, 1},
	},
	"sub-tropical": {
		"spring": {53, 73, 0}, "summer": {64, 83, -2}, "fall": {59, 78, 0}, "winter": {48, 58, 3},
	},
	"temperate": {
		"spring": {45, 59, 0}, "summer": {56, 69, -1}, "fall": {50, 63, 1}, "winter": {41, 50, 2},
	},
	"tundra": {
		"spring": {3, 16, -5}, "summer": {37, 45, -4}, "fall": {16, 25, -4}, "winter": {-4, 9, -4},
	},
}

var seasons = []string{"spring", "summer", "fall", "winter"}

// Report is one generated day of weather.
type Report struct {
	Climate string
	Season  string

	Low  int
	High int

	Wind          Level
	Precipitation Level
	PrecipForm    Form
}

// Climates returns every known climate in sorted order.
func Climates() []string {
	return slices.Sorted(maps.Keys(climateData))
}

// Seasons returns the four seasons in calendar order.
func Seasons() []string {
	return slices.Clone(seasons)
}

// Generate rolls one day of weather for the climate and season. A temperature
// d20 of 15-17 shifts the band down by a d4 of tens of degrees, 18+ shifts it
// up; the offset die is spent either way. Wind and precipitation then grade
// their own d20s, precipitation with the band's modifier.
func Generate(climate, season string, r dice.Roller) (*Report, error) {
	climate = strings.ToLower(strings.TrimSpace(climate))
	season = strings.ToLower(strings.TrimSpace(season))

	bands, ok := climateData[climate]
	if !ok {
		return nil, lorerr.InvalidArgumentf("unknown climate %q", climate)
	}
	b, ok := bands[season]
	if !ok {
		return nil, lorerr.InvalidArgumentf("unknown season %q", season)
	}

	tempRoll, err := r.Roll(20)
	if err != nil {
		return nil, err
	}
	offsetRoll, err := r.Roll(4)
	if err != nil {
		return nil, err
	}

	low, high := b.low, b.high
	offset := offsetRoll * 10
	switch {
	case tempRoll >= 18:
		low += offset
		high += offset
	case tempRoll >= 15:
		low -= offset
		high -= offset
	}

	windRoll, err := r.Roll(20)
	if err != nil {
		return nil, err
	}
	wind := LevelStrong
	switch {
	case windRoll < 13:
		wind = LevelNone
	case windRoll < 18:
		wind = LevelLight
	}

	precipRoll, err := r.Roll(20)
	if err != nil {
		return nil, err
	}
	precip := LevelHeavy
	switch {
	case precipRoll+b.precipMod < 13:
		precip = LevelNone
	case precipRoll+b.precipMod < 18:
		precip = LevelLight
	}

	// The form follows the day's shifted temperatures, not the band.
	form := FormRain
	switch {
	case high < 32:
		form = FormSnow
	case low < 32:
		form = FormRainOrSnow
	}

	return &Report{
		Climate:       climate,
		Season:        season,
		Low:           low,
		High:          high,
		Wind:          wind,
		Precipitation: precip,
		PrecipForm:    form,
	}, nil
}

// ExtremeCold reports whether the low calls for cold-exposure saves.
func (r *Report) ExtremeCold() bool {
	return r.Low <= 0
}

// ExtremeHeat reports whether the high calls for heat-exposure saves.
func (r *Report) ExtremeHeat() bool {
	return r.High >= 100
}

// Describe renders the report as the lines a game master reads out.
func (r *Report) Describe() []string {
	lines := []string{
		fmt.Sprintf("The temperature ranges from a low of %dF to a high of %dF.", r.Low, r.High),
	}

	switch r.Wind {
	case LevelNone:
		lines = append(lines, "There is little to no wind today.")
	case LevelLight:
		lines = append(lines, "There is a light wind today.")
	default:
		lines = append(lines, "There is a strong wind today.")
	}

	switch r.Precipitation {
	case LevelNone:
		lines = append(lines, fmt.Sprintf("There is no %s today.", r.PrecipForm))
	case LevelLight:
		lines = append(lines, fmt.Sprintf("There is light %s today.", r.PrecipForm))
	default:
		lines = append(lines, fmt.Sprintf("There is heavy %s today.", r.PrecipForm))
	}
	return lines
}

// Warnings lists the hazard rules the day's weather puts in play.
func (r *Report) Warnings() []string {
	var warnings []string
	if r.ExtremeCold() {
		warnings = append(warnings,
			"Extreme cold: DC 10 Constitution save every hour or gain a level of exhaustion.")
	}
	if r.ExtremeHeat() {
		warnings = append(warnings,
			"Extreme heat: Constitution save every hour (DC 5, +1 per hour after the first) or gain a level of exhaustion.")
	}
	if r.Wind == LevelStrong {
		warnings = append(warnings,
			"Strong wind: ranged attacks and hearing checks have disadvantage; open flames go out.")
	}
	if r.Precipitation == LevelHeavy {
		warnings = append(warnings,
			"Heavy precipitation: the area is lightly obscured; sight checks have disadvantage.")
	}
	return warnings
}
