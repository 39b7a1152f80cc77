package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	c := New(20)
	if got := c.Truncate("200 g de farine"); got != "200 g de farine" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate_CutsAtWordBoundary(t *testing.T) {
	c := New(12)
	got := c.Truncate("Préchauffer le four à 200°C")
	if got != "Préchauffer" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	c := New(5)
	got := c.Truncate("ééééééééééé")
	if utf8.RuneCountInString(got) != 5 || !utf8.ValidString(got) {
		t.Fatalf("got %q", got)
	}
}

func TestNew_DefaultBudget(t *testing.T) {
	c := New(0)
	if c.Budget != 8000 {
		t.Fatalf("budget = %d", c.Budget)
	}
	long := strings.Repeat("mot ", 5000)
	if n := utf8.RuneCountInString(c.Truncate(long)); n > 8000 {
		t.Fatalf("truncated length %d exceeds budget", n)
	}
}
