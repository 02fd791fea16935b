// Package entity generates spoken and canonical values for each PII kind
package entity

import "sttsynth/internal/core/rng"

// Label is the annotation class attached to a span
type Label string

const (
	// LabelCreditCard marks a spoken card number
	LabelCreditCard Label = "CREDIT_CARD"
	// LabelPhone marks a spoken phone number
	LabelPhone Label = "PHONE"
	// LabelEmail marks a spoken email address
	LabelEmail Label = "EMAIL"
	// LabelPersonName marks a first and last name
	LabelPersonName Label = "PERSON_NAME"
	// LabelDate marks a spoken calendar date
	LabelDate Label = "DATE"
	// LabelCity marks a city name
	LabelCity Label = "CITY"
	// LabelLocation marks a street or landmark
	LabelLocation Label = "LOCATION"
)

// Labels lists every label in registry order
func Labels() []Label {
	return []Label{
		LabelCreditCard, LabelPhone, LabelEmail, LabelPersonName,
		LabelDate, LabelCity, LabelLocation,
	}
}

// Valid reports whether l is a known label
func (l Label) Valid() bool {
	for _, x := range Labels() {
		if x == l {
			return true
		}
	}
	return false
}

// Value is one generated entity
// Canonical equals Spoken for kinds without a structured form
type Value struct {
	Spoken    string
	Canonical string
}

// Generator draws one value from r
type Generator func(r rng.Source) Value

// Kind binds a template tag to its label and generator
type Kind struct {
	Tag   string
	Label Label
	Gen   Generator
}

// Span is a half open character range over generated text
type Span struct {
	Start     int
	End       int
	Label     Label
	Canonical string
}

// Overlaps reports whether s and o share at least one character
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}
