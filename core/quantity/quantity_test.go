package quantity

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		q, mult float64
		want    string
	}{
		{300, 1, "300"},
		{300, 1.5, "450"},
		{0.5, 1, "0.5"},
		{1.0 / 3, 1, "0.3"},
		{2, 0.25, "0.5"},
		{3, 2.0 / 3, "2"},
		{2.25, 1, "2.3"},
		{1.04, 1, "1"},
	}
	for _, c := range cases {
		if got := Format(c.q, c.mult); got != c.want {
			t.Errorf("Format(%v, %v) = %q, want %q", c.q, c.mult, got, c.want)
		}
	}
}

func TestParseInline(t *testing.T) {
	cases := []struct {
		in   string
		want Parsed
		ok   bool
	}{
		{"300 g de farine", Parsed{300, "g", "farine"}, true},
		{"200g flour", Parsed{200, "g", "flour"}, true},
		{"1,5 kg de pommes", Parsed{1.5, "kg", "pommes"}, true},
		{"1/2 cuillère à café de sel", Parsed{0.5, "cuillère à café", "sel"}, true},
		{"2 cuillères à soupe d'huile d'olive", Parsed{2, "cuillères à soupe", "huile d'olive"}, true},
		{"2 cups of milk", Parsed{2, "cups", "milk"}, true},
		{"3 oeufs entiers", Parsed{3, "", "oeufs entiers"}, true},
		{"3 gousses d'ail", Parsed{3, "", "gousses d'ail"}, true},
		{"1 pincée de sel", Parsed{1, "pincée", "sel"}, true},
		{"sel et poivre", Parsed{}, false},
		{"1/0 tasse", Parsed{}, false},
		{"12", Parsed{}, false},
	}
	for _, c := range cases {
		got, ok := ParseInline(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseInline(%q) = %+v, %v; want %+v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestRender(t *testing.T) {
	q := 200.0
	cases := []struct {
		name string
		in   Ingredient
		mult float64
		want string
	}{
		{"structured", Ingredient{Name: "farine", Quantity: &q, Unit: "g"}, 1.5, "300 g farine"},
		{"structured without unit", Ingredient{Name: "oeufs", Quantity: &q}, 0.01, "2 oeufs"},
		{"structured with note", Ingredient{Name: "beurre", Quantity: &q, Unit: "g", Note: "mou"}, 1, "200 g beurre (mou)"},
		{"inline", Ingredient{Name: "300 g de farine"}, 2, "600 g farine"},
		{"inline without unit", Ingredient{Name: "3 oeufs"}, 2, "6 oeufs"},
		{"verbatim", Ingredient{Name: "sel et poivre"}, 2, "sel et poivre"},
	}
	for _, c := range cases {
		if got := Render(c.in, c.mult); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestParseLines(t *testing.T) {
	got := ParseLines("300 g de farine\n\n  sel  \n2 oeufs")
	if len(got) != 3 {
		t.Fatalf("got %d ingredients", len(got))
	}
	if got[0].Name != "farine" || got[0].Quantity == nil || *got[0].Quantity != 300 || got[0].Unit != "g" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Name != "sel" || got[1].Quantity != nil {
		t.Errorf("second = %+v", got[1])
	}
	if got[2].Name != "oeufs" || *got[2].Quantity != 2 {
		t.Errorf("third = %+v", got[2])
	}
}

func TestMultiplier(t *testing.T) {
	if m := Multiplier(4, 6); m != 1.5 {
		t.Errorf("Multiplier(4, 6) = %v", m)
	}
	if Multiplier(0, 6) != 1 || Multiplier(4, 0) != 1 {
		t.Errorf("unknown counts must not scale")
	}
}
