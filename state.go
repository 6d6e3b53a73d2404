package surfacegrid

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DefaultCutoffPercent is the cutoff used when no valid persisted value exists.
const DefaultCutoffPercent = 50

// gradientJSON is the persisted form of one gradient.
// Pointers distinguish a missing endpoint from a zero one.
type gradientJSON struct {
	Low  []*float64 `json:"low"`
	High []*float64 `json:"high"`
}

// gradientsJSON is the persisted form of a Gradients set.
type gradientsJSON struct {
	XBelow *gradientJSON `json:"xBelow"`
	XAbove *gradientJSON `json:"xAbove"`
	YBelow *gradientJSON `json:"yBelow"`
	YAbove *gradientJSON `json:"yAbove"`
}

func (g *gradientsJSON) slots() [numGradients]**gradientJSON {
	return [numGradients]**gradientJSON{&g.XBelow, &g.XAbove, &g.YBelow, &g.YAbove}
}

// MarshalGradients encodes gs as a JSON object with the keys xBelow, xAbove,
// yBelow and yAbove, each holding low and high as [h, s, l, alpha].
func MarshalGradients(gs *Gradients) ([]byte, error) {
	var doc gradientsJSON
	for k, slot := range doc.slots() {
		g := &gs[k]
		*slot = &gradientJSON{Low: hslToJSON(g.Low), High: hslToJSON(g.High)}
	}
	return json.Marshal(&doc)
}

// UnmarshalGradients decodes a payload written by MarshalGradients.
//
// Every key must be present, no other key may appear, and every endpoint must
// be an array of exactly four numbers. Nothing but whitespace may follow the
// object. Any violation yields ErrInvalidState.
func UnmarshalGradients(data []byte) (Gradients, error) {
	var gs Gradients
	var doc gradientsJSON

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return gs, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return gs, fmt.Errorf("%w: trailing data after gradients", ErrInvalidState)
	}

	for k, slot := range doc.slots() {
		key := GradientKey(k)
		g := *slot
		if g == nil {
			return gs, fmt.Errorf("%w: missing %s", ErrInvalidState, key)
		}
		low, err := hslFromJSON(g.Low)
		if err != nil {
			return gs, fmt.Errorf("%w: %s.low: %v", ErrInvalidState, key, err)
		}
		high, err := hslFromJSON(g.High)
		if err != nil {
			return gs, fmt.Errorf("%w: %s.high: %v", ErrInvalidState, key, err)
		}
		gs[key] = Gradient{Low: low, High: high}
	}
	return gs, nil
}

// LoadGradients decodes persisted gradients, falling back to
// DefaultGradients when the payload is invalid.
func LoadGradients(data []byte) Gradients {
	gs, err := UnmarshalGradients(data)
	if err != nil {
		Logger().Warn("surfacegrid: persisted gradients rejected, using defaults", slog.Any("error", err))
		return DefaultGradients()
	}
	return gs
}

func hslToJSON(c HSL) []*float64 {
	return []*float64{&c.H, &c.S, &c.L, &c.Alpha}
}

func hslFromJSON(v []*float64) (HSL, error) {
	if len(v) != 4 {
		return HSL{}, fmt.Errorf("want 4 elements, got %d", len(v))
	}
	for i, p := range v {
		if p == nil {
			return HSL{}, fmt.Errorf("element %d is null", i)
		}
	}
	return HSL{H: *v[0], S: *v[1], L: *v[2], Alpha: *v[3]}, nil
}

// CutoffFromPercent converts a 0-100 percentage of the Z range to a cutoff.
func CutoffFromPercent(pct int, zMin, zMax float64) float64 {
	return zMin + (zMax-zMin)*float64(pct)/100
}

// PercentFromCutoff converts a cutoff to the nearest 0-100 percentage of the
// Z range. A degenerate range yields DefaultCutoffPercent.
func PercentFromCutoff(cutoff, zMin, zMax float64) int {
	if zMax == zMin {
		return DefaultCutoffPercent
	}
	pct := math.Round((cutoff - zMin) / (zMax - zMin) * 100)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}

// ParseCutoffPercent parses a persisted cutoff percentage.
func ParseCutoffPercent(s string) (int, error) {
	pct, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: cutoff %q: %v", ErrInvalidState, s, err)
	}
	if pct < 0 || pct > 100 {
		return 0, fmt.Errorf("%w: cutoff %d outside 0-100", ErrInvalidState, pct)
	}
	return pct, nil
}

// LoadCutoffPercent parses a persisted cutoff percentage, falling back to
// DefaultCutoffPercent when it is invalid.
func LoadCutoffPercent(s string) int {
	pct, err := ParseCutoffPercent(s)
	if err != nil {
		Logger().Warn("surfacegrid: persisted cutoff rejected, using default", slog.Any("error", err))
		return DefaultCutoffPercent
	}
	return pct
}
