package template

import (
	"strings"
	"testing"

	"sttsynth/internal/core/entity"
	"sttsynth/internal/core/lexicon"
	"sttsynth/internal/core/rng"
)

func fixed(spokenForm string) entity.Generator {
	return func(rng.Source) entity.Value { return entity.Value{Spoken: spokenForm, Canonical: strings.ToUpper(spokenForm)} }
}

// kinds mirrors the production registry order with fixed values
func fixedKinds() []entity.Kind {
	return []entity.Kind{
		{Tag: "credit_card", Label: entity.LabelCreditCard, Gen: fixed("one two three four")},
		{Tag: "phone", Label: entity.LabelPhone, Gen: fixed("four one five 555 1234")},
		{Tag: "email", Label: entity.LabelEmail, Gen: fixed("mary7 at gmail dot com")},
		{Tag: "person_name", Label: entity.LabelPersonName, Gen: fixed("john smith")},
		{Tag: "date", Label: entity.LabelDate, Gen: fixed("march 3")},
		{Tag: "city", Label: entity.LabelCity, Gen: fixed("são paulo")},
		{Tag: "location", Label: entity.LabelLocation, Gen: fixed("main street")},
	}
}

func TestParse(t *testing.T) {
	tp, err := Parse("{person_name} at {email} phone {phone}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(tp.Tags(), ","); got != "person_name,email,phone" {
		t.Fatalf("tags = %q", got)
	}
	if !tp.Has("email") || tp.Has("city") {
		t.Fatalf("Has mismatch")
	}
	if tp.Placeholders[0].Start != 0 || tp.Placeholders[0].End != len("{person_name}") {
		t.Fatalf("placeholder bounds = %+v", tp.Placeholders[0])
	}

	none, err := Parse("no placeholders here")
	if err != nil || len(none.Placeholders) != 0 {
		t.Fatalf("plain template: %+v %v", none, err)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, raw := range []string{
		"call {phone} or {phone}",
		"call {phone",
		"call phone}",
		"call {Phone}",
		"call {}",
	} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q) expected error", raw)
		}
	}
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(fixedKinds(), nil); err == nil {
		t.Fatalf("expected error for no templates")
	}
	if _, err := NewEngine(fixedKinds(), []string{"call {ssn}"}); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
	if _, err := NewEngine(fixedKinds(), []string{"call  {phone}"}); err == nil {
		t.Fatalf("expected error for double space")
	}
	dup := append(fixedKinds(), fixedKinds()[0])
	if _, err := NewEngine(dup, []string{"x"}); err == nil {
		t.Fatalf("expected error for duplicate kind")
	}
}

func TestFill_OffsetsWhenTextOrderDiffersFromRegistry(t *testing.T) {
	e, err := NewEngine(fixedKinds(), []string{"hi this is {person_name} my number is {phone}"})
	if err != nil {
		t.Fatal(err)
	}
	text, spans := e.Fill(rng.New(1), e.Templates()[0])
	if text != "hi this is john smith my number is four one five 555 1234" {
		t.Fatalf("text = %q", text)
	}
	if len(spans) != 2 {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Label != entity.LabelPersonName || Slice(text, spans[0]) != "john smith" {
		t.Fatalf("span0 = %+v (%q)", spans[0], Slice(text, spans[0]))
	}
	if spans[1].Label != entity.LabelPhone || Slice(text, spans[1]) != "four one five 555 1234" {
		t.Fatalf("span1 = %+v (%q)", spans[1], Slice(text, spans[1]))
	}
	if spans[1].Canonical != "FOUR ONE FIVE 555 1234" {
		t.Fatalf("canonical not carried: %q", spans[1].Canonical)
	}
}

func TestFill_CharacterOffsets(t *testing.T) {
	e, err := NewEngine(fixedKinds(), []string{"from {city} to {location}"})
	if err != nil {
		t.Fatal(err)
	}
	text, spans := e.Fill(rng.New(1), e.Templates()[0])
	// "são" is three characters but four bytes
	if spans[0].Start != 5 || spans[0].End != 14 {
		t.Fatalf("city span = %+v", spans[0])
	}
	if Slice(text, spans[1]) != "main street" {
		t.Fatalf("location slice = %q", Slice(text, spans[1]))
	}
}

func TestFill_DrawsInRegistryOrder(t *testing.T) {
	var order []string
	track := func(tag string) entity.Generator {
		return func(rng.Source) entity.Value {
			order = append(order, tag)
			return entity.Value{Spoken: tag}
		}
	}
	kinds := []entity.Kind{
		{Tag: "phone", Label: entity.LabelPhone, Gen: track("phone")},
		{Tag: "person_name", Label: entity.LabelPersonName, Gen: track("person_name")},
	}
	e, err := NewEngine(kinds, []string{"{person_name} {phone}"})
	if err != nil {
		t.Fatal(err)
	}
	e.Fill(rng.New(1), e.Templates()[0])
	if strings.Join(order, ",") != "phone,person_name" {
		t.Fatalf("draw order = %v", order)
	}
}

func TestGenerate_PackTemplatesRoundTrip(t *testing.T) {
	p, err := lexicon.Load()
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(entity.New(p).Registry(), p.Templates)
	if err != nil {
		t.Fatalf("pack templates must compile: %v", err)
	}
	r := rng.New(42)
	for i := 0; i < 2000; i++ {
		text, spans := e.Generate(r)
		if strings.ContainsAny(text, "{}") {
			t.Fatalf("unfilled placeholder in %q", text)
		}
		for j, s := range spans {
			if j > 0 && (spans[j-1].Start > s.Start || spans[j-1].Overlaps(s)) {
				t.Fatalf("spans unsorted or overlapping: %+v", spans)
			}
			got := Slice(text, s)
			if got == "" || got != strings.TrimSpace(got) {
				t.Fatalf("bad slice %q for %+v in %q", got, s, text)
			}
		}
	}
}

func TestSlice_OutOfRange(t *testing.T) {
	if Slice("abc", entity.Span{Start: 2, End: 9}) != "" {
		t.Fatalf("expected empty slice")
	}
}
