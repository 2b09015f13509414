package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Bracket is one slice of a progressive tax schedule. Max == nil marks the
// open-ended top bracket. Rate is a fraction (0.20 = 20%).
type Bracket struct {
	Min  float64  `json:"min"`
	Max  *float64 `json:"max"`
	Rate float64  `json:"rate"`
}

var (
	ErrBracketsNotArray = errors.New("its brackets must be a JSON array")
	ErrBracketsGap      = errors.New("its brackets must partition [0, inf) without gaps or overlaps")
	ErrBracketsOpenEnd  = errors.New("only the last its bracket may be open-ended")
	ErrBracketRate      = errors.New("its bracket rate must be a fraction between 0 and 1")
)

// ParseBrackets decodes a serialized bracket schedule and validates its
// structure. Returned brackets are sorted by Min ascending. An empty or
// null payload is valid and yields nil, which callers treat as "use the
// flat-rate fallback".
//
// Structural rules: the first bracket starts at 0, each bracket's max equals
// the next bracket's min, only the last bracket is open-ended, and every
// rate is a fraction in [0, 1].
func ParseBrackets(raw json.RawMessage) ([]Bracket, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var brackets []Bracket
	if err := json.Unmarshal(raw, &brackets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBracketsNotArray, err)
	}
	if len(brackets) == 0 {
		return nil, nil
	}

	sorted := make([]Bracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	if err := validateBrackets(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}

func validateBrackets(sorted []Bracket) error {
	if sorted[0].Min != 0 {
		return fmt.Errorf("%w: first bracket starts at %v, want 0", ErrBracketsGap, sorted[0].Min)
	}

	for i, b := range sorted {
		if b.Rate < 0 || b.Rate > 1 || math.IsNaN(b.Rate) {
			return fmt.Errorf("%w: bracket %d has rate %v", ErrBracketRate, i, b.Rate)
		}

		last := i == len(sorted)-1
		if b.Max == nil {
			if !last {
				return fmt.Errorf("%w: bracket %d", ErrBracketsOpenEnd, i)
			}
			continue
		}

		if *b.Max <= b.Min {
			return fmt.Errorf("%w: bracket %d has max %v <= min %v", ErrBracketsGap, i, *b.Max, b.Min)
		}
		if last {
			return fmt.Errorf("%w: last bracket must be open-ended", ErrBracketsOpenEnd)
		}
		if next := sorted[i+1]; next.Min != *b.Max {
			return fmt.Errorf("%w: bracket %d ends at %v but bracket %d starts at %v",
				ErrBracketsGap, i, *b.Max, i+1, next.Min)
		}
	}

	return nil
}
