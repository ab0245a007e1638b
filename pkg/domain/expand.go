package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Expand turns a multiset of choice labels into the happenings of repeats
// successive random picks.
//
// Each distinct label yields one happening, in first-occurrence order, with
// probability count/len(choices). Its children are the expansion of the
// remaining repeats-1 picks: from the same choices when replacing, or from
// the choices minus the first occurrence of that label otherwise.
//
// repeats == 0 or an empty choice list gives no happenings. Expansions that
// would exceed MaxExpandNodes fail with ErrInvalidInput before anything is
// built.
func Expand(choices []string, repeats int, replacing bool) ([]Happening, error) {
	if repeats < 0 {
		return nil, fmt.Errorf("%w: negative repeats %d", ErrInvalidInput, repeats)
	}
	if n := expandSize(choices, repeats, replacing); n > MaxExpandNodes {
		return nil, fmt.Errorf("%w: %d picks from %d choices exceed %d happenings",
			ErrInvalidInput, repeats, len(choices), MaxExpandNodes)
	}
	return expand(choices, repeats, replacing), nil
}

// MaxExpandNodes caps the number of happenings a single Expand may build.
const MaxExpandNodes = 1 << 16

// expandSize is an upper bound on the happenings expand would build. It stops
// counting as soon as the bound passes MaxExpandNodes.
func expandSize(choices []string, repeats int, replacing bool) int64 {
	distinct := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		distinct[c] = struct{}{}
	}

	var total int64
	level := int64(1)
	for i := 0; i < repeats; i++ {
		width := int64(len(distinct))
		if !replacing {
			width = min(width, int64(len(choices)-i))
		}
		if width <= 0 {
			break
		}
		level *= width
		total += level
		if total > MaxExpandNodes {
			break
		}
	}
	return total
}

func expand(choices []string, repeats int, replacing bool) []Happening {
	if repeats == 0 || len(choices) == 0 {
		return nil
	}

	var order []string
	counts := make(map[string]int64)
	firstIndex := make(map[string]int)
	for i, c := range choices {
		if _, seen := counts[c]; !seen {
			order = append(order, c)
			firstIndex[c] = i
		}
		counts[c]++
	}

	total := int64(len(choices))
	happenings := make([]Happening, 0, len(order))
	for _, label := range order {
		residual := choices
		if !replacing {
			i := firstIndex[label]
			residual = make([]string, 0, len(choices)-1)
			residual = append(residual, choices[:i]...)
			residual = append(residual, choices[i+1:]...)
		}
		happenings = append(happenings, NewHappening(
			label,
			NewProbability(counts[label], total),
			expand(residual, repeats-1, replacing)...,
		))
	}
	return happenings
}

// ExpandString treats every rune of s as a separate label.
func ExpandString(s string, repeats int, replacing bool) ([]Happening, error) {
	return Expand(Labels(s), repeats, replacing)
}

// Labels splits s into single-rune labels.
func Labels(s string) []string {
	labels := make([]string, 0, len(s))
	for _, r := range s {
		labels = append(labels, string(r))
	}
	return labels
}

// ExpandAny accepts a string, []string, []rune, []int, or []any holding
// strings, runes or whole numbers. Anything else fails with ErrInvalidInput.
func ExpandAny(choices any, repeats int, replacing bool) ([]Happening, error) {
	labels, err := ToLabels(choices)
	if err != nil {
		return nil, err
	}
	return Expand(labels, repeats, replacing)
}

// ToLabels normalises the accepted choice shapes into string labels.
func ToLabels(choices any) ([]string, error) {
	switch v := choices.(type) {
	case string:
		return Labels(v), nil
	case []string:
		return v, nil
	case []rune:
		labels := make([]string, len(v))
		for i, r := range v {
			labels[i] = string(r)
		}
		return labels, nil
	case []int:
		labels := make([]string, len(v))
		for i, n := range v {
			labels[i] = strconv.Itoa(n)
		}
		return labels, nil
	case []any:
		labels := make([]string, len(v))
		for i, item := range v {
			switch x := item.(type) {
			case string:
				labels[i] = x
			case rune:
				labels[i] = string(x)
			case int:
				labels[i] = strconv.Itoa(x)
			case int64:
				labels[i] = strconv.FormatInt(x, 10)
			case float64:
				// encoding/json decodes every number as float64.
				if x != math.Trunc(x) {
					return nil, fmt.Errorf("%w: choice %d is not a whole number: %v", ErrInvalidInput, i, x)
				}
				labels[i] = strconv.FormatInt(int64(x), 10)
			default:
				return nil, fmt.Errorf("%w: choice %d has unsupported type %T", ErrInvalidInput, i, item)
			}
		}
		return labels, nil
	case nil:
		return nil, fmt.Errorf("%w: choices are missing", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: choices must be a string or a list, got %T", ErrInvalidInput, choices)
	}
}
