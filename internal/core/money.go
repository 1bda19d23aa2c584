// Package core holds the MoneyMaven domain types shared by the API client and
// the page controllers.
//
// This file contains helpers for reading amounts typed by the user and for
// formatting amounts returned by the API.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyAmount = errors.New("empty amount")
	ErrNotANumber  = errors.New("not a number")
)

// ParseAmount reads a user-typed amount the way a browser number input does.
//
// An empty string is ErrEmptyAmount. Surrounding whitespace is ignored and a
// whitespace-only value reads as zero. NaN and infinities are rejected, as is
// anything strconv cannot parse. The sign is preserved: callers decide whether
// negative or zero values are acceptable.
//
// Examples:
//
//	ParseAmount("12.99") -> 12.99, nil
//	ParseAmount(" 3 ")   -> 3, nil
//	ParseAmount("  ")    -> 0, nil
//	ParseAmount("-5")    -> -5, nil
//	ParseAmount("abc")   -> 0, ErrNotANumber
func ParseAmount(s string) (float64, error) {
	if s == "" {
		return 0, ErrEmptyAmount
	}
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// FormatAmount renders an amount with two decimals, as shown in tables.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// AmountField renders a loaded amount back into a form field. Zero reads as
// an empty field so the user sees a blank input rather than "0".
func AmountField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
