// Package format renders distances and bearings for display.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Meters returns a distance with thousands separators and one decimal
// (e.g., "1,234.5m").
func Meters(v float64) string {
	return number(v) + "m"
}

// Degrees returns a bearing with one decimal (e.g., "38.7°").
func Degrees(v float64) string {
	return number(v) + "°"
}

// SignedMeters returns a distance correction with an explicit sign
// (e.g., "+0.5m", "-20.0m").
func SignedMeters(v float64) string {
	return signed(v) + "m"
}

// SignedDegrees returns a bearing correction with an explicit sign.
func SignedDegrees(v float64) string {
	return signed(v) + "°"
}

// Number returns v with thousands separators and one decimal.
func Number(v float64) string {
	return number(v)
}

func number(v float64) string {
	s := printer.Sprintf("%.1f", v)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

func signed(v float64) string {
	s := number(v)
	if strings.HasPrefix(s, "-") || s == "0.0" {
		return s
	}
	return "+" + s
}
