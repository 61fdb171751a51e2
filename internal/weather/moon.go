package weather

import (
	"math"
	"time"

	"github.com/i474232898/weather-dashboard/internal/common"
)

const (
	// SynodicMonth is the mean new-moon-to-new-moon period in days.
	SynodicMonth  = 29.53058867
	secondsPerDay = 86400
)

// referenceNewMoon is a known new moon: 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC).Unix()

// CalculateMoonPhase returns the lunar phase at unix time dt as a fraction of
// the synodic month in [0, 1), rounded to two decimals. 0 is new moon, 0.5 full.
func CalculateMoonPhase(dt int64) float64 {
	daysSince := float64(dt-referenceNewMoon) / secondsPerDay
	cycle := math.Mod(daysSince, SynodicMonth)
	if cycle < 0 {
		cycle += SynodicMonth
	}
	phase := common.Round(cycle/SynodicMonth, 2)
	if phase >= 1 {
		phase = 0
	}
	return phase
}

// MoonPhase is a display label for a phase fraction.
type MoonPhase struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// MoonPhaseName maps a phase fraction to one of the eight named phases.
func MoonPhaseName(phase float64) MoonPhase {
	switch {
	case phase < 0.03 || phase > 0.97:
		return MoonPhase{Name: "New Moon", Emoji: "🌑"}
	case phase < 0.22:
		return MoonPhase{Name: "Waxing Crescent", Emoji: "🌒"}
	case phase < 0.28:
		return MoonPhase{Name: "First Quarter", Emoji: "🌓"}
	case phase < 0.47:
		return MoonPhase{Name: "Waxing Gibbous", Emoji: "🌔"}
	case phase < 0.53:
		return MoonPhase{Name: "Full Moon", Emoji: "🌕"}
	case phase < 0.72:
		return MoonPhase{Name: "Waning Gibbous", Emoji: "🌖"}
	case phase < 0.78:
		return MoonPhase{Name: "Last Quarter", Emoji: "🌗"}
	default:
		return MoonPhase{Name: "Waning Crescent", Emoji: "🌘"}
	}
}
