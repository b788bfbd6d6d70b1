package services

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indianEnglish = language.MustParse("en-IN")

// Locale formats numbers and dates for en-IN readers in a fixed zone.
type Locale struct {
	loc *time.Location
}

func NewLocale(loc *time.Location) *Locale {
	if loc == nil {
		loc = time.Local
	}
	return &Locale{loc: loc}
}

func (l *Locale) printer() *message.Printer {
	return message.NewPrinter(indianEnglish)
}

// Number groups digits the Indian way and keeps at most two decimals.
func (l *Locale) Number(v float64) string {
	return l.printer().Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Amount groups digits the Indian way with exactly two decimals.
func (l *Locale) Amount(v float64) string {
	return l.printer().Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Currency prefixes Amount with the rupee sign.
func (l *Locale) Currency(v float64) string {
	return "₹" + l.Amount(v)
}

// Date renders "15 October 2026".
func (l *Locale) Date(t time.Time) string {
	return t.In(l.loc).Format("2 January 2006")
}

// DateTime renders "15/10/2026, 6:30:00 pm".
func (l *Locale) DateTime(t time.Time) string {
	return t.In(l.loc).Format("02/01/2006, 3:04:05 pm")
}
