package detail

import (
	"fmt"
	"math"
	"strconv"

	"github.com/albapepper/pokeview/internal/i18n"
)

// Gender ratio sentinels from the upstream species record.
const (
	genderRateUnknown    = -1
	genderRateGenderless = 8
)

// GenderKind classifies a gender ratio.
type GenderKind string

const (
	GenderUnknown    GenderKind = "unknown"
	GenderGenderless GenderKind = "genderless"
	GenderFemale     GenderKind = "female" // strictly more female
	GenderMale       GenderKind = "male"   // strictly more male
	GenderMixed      GenderKind = "mixed"  // exactly even
)

// Gender is the derived gender label. Percentages are nil when the entity
// has no gender split.
type Gender struct {
	Kind          GenderKind `json:"kind"`
	Label         string     `json:"label"`
	FemalePercent *float64   `json:"female_percent,omitempty"`
	MalePercent   *float64   `json:"male_percent,omitempty"`
}

// GenderFor maps a gender rate (eighths female) onto a label. known=false
// means there was no species record. Rates outside -1..8 are unknown.
func GenderFor(lang string, rate int, known bool) Gender {
	switch {
	case !known || rate == genderRateUnknown || rate < 0 || rate > genderRateGenderless:
		return Gender{Kind: GenderUnknown, Label: i18n.Label(lang, "gender_unknown")}
	case rate == genderRateGenderless:
		return Gender{Kind: GenderGenderless, Label: i18n.Label(lang, "gender_genderless")}
	}

	female := float64(rate) / 8 * 100
	male := 100 - female
	femalePart := "♀ " + formatPercent(female)
	malePart := "♂ " + formatPercent(male)

	g := Gender{FemalePercent: &female, MalePercent: &male}
	switch {
	case female > male:
		g.Kind = GenderFemale
		g.Label = femalePart + " • " + malePart
	case male > female:
		g.Kind = GenderMale
		g.Label = malePart + " • " + femalePart
	default:
		g.Kind = GenderMixed
		g.Label = femalePart + " • " + malePart
	}
	return g
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// BarPercent is the stat bar width: the rounded base value clamped to [0, 100].
func BarPercent(base float64) int {
	return int(math.Max(0, math.Min(100, math.Round(base))))
}

// FormatHeight converts decimetres to metres with one decimal.
func FormatHeight(decimetres int) string {
	return fmt.Sprintf("%.1f m", float64(decimetres)/10)
}

// FormatWeight converts hectograms to kilograms with one decimal.
func FormatWeight(hectograms int) string {
	return fmt.Sprintf("%.1f kg", float64(hectograms)/10)
}

// FormatNumber renders an id as a zero-padded national dex number.
func FormatNumber(id int) string {
	return fmt.Sprintf("#%04d", id)
}
