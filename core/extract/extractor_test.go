package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const pageHTML = `<html><head><style>.x{color:red}</style><script>var tracking = 1;</script></head>
<body>
<header>Site header</header>
<nav><a href="/">Home</a></nav>
<main>
  <h1>Cr&egrave;me br&ucirc;l&eacute;e</h1>
  <ul><li>4 jaunes d&#39;&oelig;ufs</li><li>50&nbsp;g de sucre</li></ul>
  <p>Chauffer la cr&#232;me &amp; la vanille.</p>
</main>
<aside>Popular recipes</aside>
<footer>Copyright</footer>
</body></html>`

func TestExtract_RemovesNoiseAndDecodesEntities(t *testing.T) {
	got, err := New(0).Extract(pageHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, noise := range []string{"tracking", "Site header", "Home", "Popular recipes", "Copyright", "color:red"} {
		if strings.Contains(got, noise) {
			t.Errorf("noise %q leaked into %q", noise, got)
		}
	}
	for _, want := range []string{"Crème brûlée", "4 jaunes d'œufs", "50 g de sucre", "Chauffer la crème & la vanille."} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "  ") || strings.Contains(got, "\n") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestExtract_RespectsBudget(t *testing.T) {
	body := "<p>" + strings.Repeat("farine sucre beurre ", 1000) + "</p>"
	got, err := New(100).Extract(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := utf8.RuneCountInString(got); n > 100 {
		t.Fatalf("length %d exceeds budget", n)
	}
}

func TestDecodeEntities(t *testing.T) {
	cases := map[string]string{
		"Salt &amp; Pepper":          "Salt & Pepper",
		"10&#45;15 minutes":          "10-15 minutes",
		"&#x2019;":                   "’",
		"cr&amp;egrave;me":           "crème",
		"l&rsquo;huile d&apos;olive": "l’huile d'olive",
	}
	for in, want := range cases {
		if got := DecodeEntities(in); got != want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", in, got, want)
		}
	}
}
