package jsonld

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture %s: %v", raw, err)
	}
	return v
}

func TestFlattenInstructions_Shapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"single string", `"Mix.\n\nBake."`, "Mix.\nBake."},
		{"string array", `["Mix.", "  ", "Bake."]`, "Mix.\nBake."},
		{"step objects", `[{"@type":"HowToStep","text":"Mix."},{"@type":"HowToStep","name":"Bake."}]`, "Mix.\nBake."},
		{"sections", `[
			{"@type":"HowToSection","name":"Dough","itemListElement":[{"text":"Knead."},{"text":"Rest."}]},
			{"@type":"HowToSection","name":"Filling","itemListElement":[{"text":"Slice apples."}]}
		]`, "Knead.\nRest.\nSlice apples."},
		{"mixed", `["Mix.", {"text":"Bake."}]`, "Mix.\nBake."},
		{"null", `null`, ""},
		{"number", `12`, ""},
		{"empty object", `{}`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FlattenInstructions(decode(t, c.raw)); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestDecodeInstructions_EveryVariantIsDescribed(t *testing.T) {
	fixtures := []string{
		`"text"`,
		`["a", "b"]`,
		`[{"text":"a"}]`,
		`{"text":"a"}`,
		`{"name":"S","itemListElement":[{"text":"a"}]}`,
		`{"name":"S","itemListElement":"single"}`,
		`null`,
	}
	seen := map[string]bool{}
	for _, raw := range fixtures {
		in := DecodeInstructions(decode(t, raw))
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("describe panicked for %s: %v", raw, r)
				}
			}()
			seen[describe(in)] = true
		}()
	}
	if len(seen) < 6 {
		t.Fatalf("expected every variant to be produced, got %v", seen)
	}
}

type unknownInstructions struct{}

func (unknownInstructions) flatten() []string { return nil }

func TestDescribe_PanicsOnUnknownVariant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an unhandled variant")
		}
	}()
	describe(unknownInstructions{})
}
