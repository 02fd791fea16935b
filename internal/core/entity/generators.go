package entity

import (
	"fmt"
	"strconv"
	"strings"

	"sttsynth/internal/core/lexicon"
	"sttsynth/internal/core/rng"
	"sttsynth/internal/core/spoken"
)

// Tags used as template placeholders
const (
	TagCreditCard = "credit_card"
	TagPhone      = "phone"
	TagEmail      = "email"
	TagPersonName = "person_name"
	TagDate       = "date"
	TagCity       = "city"
	TagLocation   = "location"
)

// Numeric ranges the generators draw from
const (
	cardDigits   = 16
	cardGroup    = 4
	phoneAreaMin = 200
	phoneAreaMax = 999
	phoneLineMin = 1000
	phoneLineMax = 9999
	emailSufMin  = 1
	emailSufMax  = 999
	dayMin       = 1
	dayMax       = 28
	yearMin      = 2020
	yearMax      = 2025
	streetNumMin = 1
	streetNumMax = 9999
)

// Generators draws entity values from a lexicon pack
type Generators struct {
	p *lexicon.Pack
}

// New returns generators bound to p
func New(p *lexicon.Pack) *Generators {
	if p == nil {
		panic("entity: nil lexicon pack")
	}
	return &Generators{p: p}
}

// Registry returns every kind in its fixed draw order
func (g *Generators) Registry() []Kind {
	return []Kind{
		{Tag: TagCreditCard, Label: LabelCreditCard, Gen: g.CreditCard},
		{Tag: TagPhone, Label: LabelPhone, Gen: g.Phone},
		{Tag: TagEmail, Label: LabelEmail, Gen: g.Email},
		{Tag: TagPersonName, Label: LabelPersonName, Gen: g.PersonName},
		{Tag: TagDate, Label: LabelDate, Gen: g.Date},
		{Tag: TagCity, Label: LabelCity, Gen: g.City},
		{Tag: TagLocation, Label: LabelLocation, Gen: g.Location},
	}
}

// CreditCard draws 16 digits and reads them either one by one or in groups of four
func (g *Generators) CreditCard(r rng.Source) Value {
	var b strings.Builder
	b.Grow(cardDigits)
	for i := 0; i < cardDigits; i++ {
		b.WriteByte(byte('0' + r.IntN(10)))
	}
	digits := b.String()

	if rng.Chance(r, 0.5) {
		return Value{Spoken: spoken.Digits(digits), Canonical: digits}
	}
	groups := make([]string, 0, cardDigits/cardGroup)
	for i := 0; i < cardDigits; i += cardGroup {
		groups = append(groups, spoken.Digits(digits[i:i+cardGroup]))
	}
	return Value{Spoken: strings.Join(groups, " "), Canonical: digits}
}

// Phone draws area, prefix and line, then one of three mixed renderings
func (g *Generators) Phone(r rng.Source) Value {
	area := rng.Between(r, phoneAreaMin, phoneAreaMax)
	prefix := rng.Between(r, phoneAreaMin, phoneAreaMax)
	line := rng.Between(r, phoneLineMin, phoneLineMax)

	var s string
	switch r.IntN(3) {
	case 0:
		s = spoken.Number(area) + " " + spoken.Number(prefix) + " " + spoken.Number(line)
	case 1:
		s = strconv.Itoa(area) + " " + spoken.Number(prefix) + " " + spoken.Number(line)
	default:
		s = spoken.Number(area) + " " + strconv.Itoa(prefix) + " " + strconv.Itoa(line)
	}
	return Value{Spoken: s, Canonical: fmt.Sprintf("%d%d%d", area, prefix, line)}
}

// Email builds "<name><n> at <provider> dot com"
func (g *Generators) Email(r rng.Source) Value {
	user := rng.Pick(r, g.p.FirstNames) + strconv.Itoa(rng.Between(r, emailSufMin, emailSufMax))
	domain := rng.Pick(r, g.p.EmailDomains)
	s := user + " at " + domain
	return Value{Spoken: s, Canonical: CanonicalEmail(s)}
}

// CanonicalEmail turns the first " at " into "@" and every " dot " into "."
func CanonicalEmail(s string) string {
	s = strings.Replace(s, " at ", "@", 1)
	return strings.ReplaceAll(s, " dot ", ".")
}

// PersonName joins a random first and last name
func (g *Generators) PersonName(r rng.Source) Value {
	s := rng.Pick(r, g.p.FirstNames) + " " + rng.Pick(r, g.p.LastNames)
	return Value{Spoken: s, Canonical: s}
}

// Date draws month, day and year, then one of four renderings
func (g *Generators) Date(r rng.Source) Value {
	month := rng.Pick(r, g.p.Months)
	day := rng.Between(r, dayMin, dayMax)
	year := rng.Between(r, yearMin, yearMax)

	d, y := strconv.Itoa(day), strconv.Itoa(year)
	var s string
	switch r.IntN(4) {
	case 0:
		s = month + " " + d + " " + y
	case 1:
		s = month + " " + spoken.Number(day) + " " + y
	case 2:
		s = month + " " + d
	default:
		s = d + " " + month + " " + y
	}
	return Value{Spoken: s, Canonical: s}
}

// City picks a city name
func (g *Generators) City(r rng.Source) Value {
	s := rng.Pick(r, g.p.Cities)
	return Value{Spoken: s, Canonical: s}
}

// Location renders a street bare, with a numeric house number, or with a spelled one
func (g *Generators) Location(r rng.Source) Value {
	num := rng.Between(r, streetNumMin, streetNumMax)
	street := rng.Pick(r, g.p.Locations)

	var s string
	switch r.IntN(3) {
	case 0:
		s = street
	case 1:
		s = strconv.Itoa(num) + " " + street
	default:
		s = spoken.Number(num) + " " + street
	}
	return Value{Spoken: s, Canonical: s}
}
