package spf

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tariffs are the per-litre heating oil prices published in the
// official bulletin, plus the two premium grades derived from them.
type Tariffs struct {
	Standard     float64
	Degressive   float64
	StandardUL   float64
	DegressiveUL float64
}

// ErrNoTariffs reports that the bulletin text did not match the
// expected heating oil lines. The layout changes without notice;
// callers must treat this as a soft failure.
var ErrNoTariffs = errors.New("no heating oil tariffs found in bulletin")

var tariffPattern = regexp.MustCompile(
	`(?s)Gasoil de chauffage\s*\(H0/H7\).*?moins de 2000 l\s*l\s*([0-9]+,[0-9]+).*?` +
		`Gasoil de chauffage\s*\(H0/H7\).*?à partir de 2000 l\s*l\s*([0-9]+,[0-9]+)`,
)

// ParseTariffs extracts the standard and degressive per-litre prices
// from the bulletin text and derives the premium grades by adding the
// markup, rounded to 4 decimals.
func ParseTariffs(text string, markup float64) (Tariffs, error) {
	m := tariffPattern.FindStringSubmatch(text)
	if m == nil {
		return Tariffs{}, ErrNoTariffs
	}

	standard, err := parseBelgianDecimal(m[1])
	if err != nil {
		return Tariffs{}, err
	}
	degressive, err := parseBelgianDecimal(m[2])
	if err != nil {
		return Tariffs{}, err
	}

	return Tariffs{
		Standard:     standard,
		Degressive:   degressive,
		StandardUL:   round4(standard + markup),
		DegressiveUL: round4(degressive + markup),
	}, nil
}

// parseBelgianDecimal parses a comma-decimal number as published in
// the bulletin ("1,2345").
func parseBelgianDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
