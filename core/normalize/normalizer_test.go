package normalize

import (
	"strings"
	"testing"
)

func TestNormalize_ListsBecomeBareLines(t *testing.T) {
	in := `<h2>Ingrédients</h2><ul><li>200 g de <strong>farine</strong></li><li>3 œufs</li></ul>
<h2>Préparation</h2><ol><li>Mélanger.</li></ol>`
	got, err := New().Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(got, "\n")
	var kept []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	want := []string{"## Ingrédients", "200 g de farine", "3 œufs", "## Préparation", "1. Mélanger."}
	if strings.Join(kept, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", kept, want)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"<p>Tarte</p><ul><li>4 pommes</li></ul>", true},
		{"Tarte aux pommes\n4 pommes", false},
		{"Mix a < b and c > d", false},
		{"<p></p><div></div>", false},
	}
	for _, c := range cases {
		if got := LooksLikeHTML(c.in); got != c.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
