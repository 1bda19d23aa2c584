package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Point is one labelled value of a chart series.
type Point struct {
	Label string
	Value float64
}

// Series is a chart series decoded from a JSON object of label -> amount.
// Unlike a Go map it keeps the order in which the server sent the keys.
type Series []Point

// UnmarshalJSON decodes {"label": number, ...} preserving key order.
// A null value counts as zero.
func (s *Series) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("series: expected object, got %v", tok)
	}

	out := Series{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("series: expected key, got %v", tok)
		}
		var v *float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("series: value for %q: %w", label, err)
		}
		p := Point{Label: label}
		if v != nil {
			p.Value = *v
		}
		out = append(out, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Labels returns the labels in series order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Values returns the values in series order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Total sums the series.
func (s Series) Total() float64 {
	var t float64
	for _, p := range s {
		t += p.Value
	}
	return t
}

// SortedByDate returns a copy ordered by the date in each label. Labels that
// are not dates keep their relative order after all dated points.
func (s Series) SortedByDate() Series {
	out := append(Series(nil), s...)
	parse := func(label string) (time.Time, bool) {
		t, err := time.Parse(DateLayout, label)
		return t, err == nil
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := parse(out[i].Label)
		tj, okJ := parse(out[j].Label)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		default:
			return okI && !okJ
		}
	})
	return out
}

// Weeks returns a copy ordered by week number with labels rewritten to "Week N".
// Labels that are not numbers are kept as they are, after the numbered weeks.
func (s Series) Weeks() Series {
	out := append(Series(nil), s...)
	num := func(label string) (int, bool) {
		n, err := strconv.Atoi(label)
		return n, err == nil
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, okI := num(out[i].Label)
		nj, okJ := num(out[j].Label)
		switch {
		case okI && okJ:
			return ni < nj
		default:
			return okI && !okJ
		}
	})
	for i, p := range out {
		if _, ok := num(p.Label); ok {
			out[i].Label = "Week " + p.Label
		}
	}
	return out
}
