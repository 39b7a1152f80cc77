package video

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/ai"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
)

const (
	videoID  = "dQw4w9WgXcQ"
	videoURL = "https://youtu.be/" + videoID
	watchURL = DefaultWatchURL + "?v=" + videoID
	frTrack  = "https://www.youtube.com/api/timedtext?v=" + videoID + "&lang=fr"
	enTrack  = "https://www.youtube.com/api/timedtext?v=" + videoID + "&lang=en"
)

type stubFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
	opts  []core.FetchOptions
}

func (s *stubFetcher) Fetch(_ context.Context, url string, opts core.FetchOptions) (*core.FetchResult, error) {
	s.calls = append(s.calls, url)
	s.opts = append(s.opts, opts)
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if page, ok := s.pages[url]; ok {
		return &core.FetchResult{URL: url, StatusCode: 200, HTML: page}, nil
	}
	return nil, &fetch.StatusError{URL: url, StatusCode: 404}
}

type completerFunc func(req core.CompletionRequest) (string, error)

func (f completerFunc) Complete(_ context.Context, req core.CompletionRequest) (string, error) {
	return f(req)
}

// watchPage builds a watch page whose player response carries the given
// description and caption tracks.
func watchPage(t *testing.T, title, description string, tracks ...CaptionTrack) string {
	t.Helper()
	player := map[string]any{
		"videoDetails": map[string]any{
			"videoId":          videoID,
			"title":            title,
			"shortDescription": description,
			"thumbnail": map[string]any{"thumbnails": []map[string]any{
				{"url": "https://i.ytimg.com/vi/" + videoID + "/default.jpg", "width": 120},
				{"url": "https://i.ytimg.com/vi/" + videoID + "/maxresdefault.jpg", "width": 1280},
				{"url": "https://other.example/huge.jpg", "width": 4000},
			}},
		},
		"captions": map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{"captionTracks": tracks},
		},
	}
	b, err := json.Marshal(player)
	if err != nil {
		t.Fatal(err)
	}
	return "<html><body><script>var ytInitialPlayerResponse = " + string(b) + ";</script></body></html>"
}

func TestVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=" + videoID + "&t=42s": videoID,
		"https://youtube.com/watch?v=" + videoID:                videoID,
		"https://m.youtube.com/watch?v=" + videoID:              videoID,
		"https://youtu.be/" + videoID + "?si=abc":               videoID,
		"https://www.youtube.com/shorts/" + videoID:             videoID,
		"https://www.youtube.com/embed/" + videoID:              videoID,
		"https://www.youtube.com/watch":                         "",
		"https://www.youtube.com/@chef":                         "",
		"https://vimeo.com/" + videoID:                          "",
		"https://youtu.be/":                                     "",
	}
	for in, want := range cases {
		got, ok := VideoID(in)
		if got != want || ok != (want != "") {
			t.Errorf("VideoID(%q) = %q, %v", in, got, ok)
		}
	}
}

func TestExtractSignals_TitleWithoutVideoDetails(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
	}{
		{"meta title", `<html><head><meta name="title" content="Crêpes faciles"><meta property="og:title" content="Other"></head>` +
			`<body><script>var data = {"title":"Unrelated playlist","shortDescription":"x"};</script></body></html>`, "Crêpes faciles"},
		{"og title", `<html><head><meta property="og:title" content="Gratin dauphinois"></head>` +
			`<body><script>var data = {"title":"Unrelated playlist"};</script></body></html>`, "Gratin dauphinois"},
		{"stray key only", `<html><body><script>var data = {"title":"Unrelated playlist"};</script></body></html>`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractSignals(c.page).Title; got != c.want {
				t.Errorf("title = %q, want %q", got, c.want)
			}
		})
	}
}

func TestIsVideoURL(t *testing.T) {
	if !IsVideoURL("https://M.YouTube.com/watch?v=x") || IsVideoURL("https://example.com/youtube.com") {
		t.Fatal("unexpected IsVideoURL result")
	}
}

func TestExtractSignals(t *testing.T) {
	page := watchPage(t, `Tarte "express"`, "Ingrédients :\n200 g de farine & sucre",
		CaptionTrack{Language: "en", URL: enTrack}, CaptionTrack{Language: "fr", URL: frTrack})
	sig := ExtractSignals(page)
	if sig.Title != `Tarte "express"` {
		t.Errorf("title = %q", sig.Title)
	}
	if sig.Description != "Ingrédients :\n200 g de farine & sucre" {
		t.Errorf("description = %q", sig.Description)
	}
	if sig.Thumbnail != "https://i.ytimg.com/vi/"+videoID+"/maxresdefault.jpg" {
		t.Errorf("thumbnail = %q", sig.Thumbnail)
	}
	if len(sig.Captions) != 2 || sig.Captions[1].URL != frTrack {
		t.Errorf("captions = %+v", sig.Captions)
	}
	if track, _ := PreferredTrack(sig.Captions); track.Language != "fr" {
		t.Errorf("preferred track = %+v", track)
	}
}

func TestIsVideoPage(t *testing.T) {
	if IsVideoPage("<html><form action=\"https://consent.youtube.com/save\"></form></html>") {
		t.Fatal("consent page reported as video page")
	}
	if !IsVideoPage(`{"shortDescription":"x"}`) || !IsVideoPage("var ytInitialPlayerResponse = {};") {
		t.Fatal("watch page not recognized")
	}
}

func TestParseCaptions(t *testing.T) {
	legacy := `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
		`<text start="0" dur="2">Bonjour &amp;#39;tout le monde&amp;#39;</text>` +
		`<text start="2" dur="3">On prépare
la pâte</text></transcript>`
	got, err := ParseCaptions(legacy)
	if err != nil || got != "Bonjour 'tout le monde' On prépare la pâte" {
		t.Fatalf("legacy: got %q, %v", got, err)
	}

	srv3 := `<timedtext format="3"><body><p t="0" d="1000">Hello</p><p t="1000" d="500"><s>big</s><s> world</s></p></body></timedtext>`
	got, err = ParseCaptions(srv3)
	if err != nil || got != "Hello big world" {
		t.Fatalf("srv3: got %q, %v", got, err)
	}
}

func TestResolve_DescriptionWithAI(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		watchURL: watchPage(t, "Tarte express", "Ma recette de tarte.",
			CaptionTrack{Language: "en", URL: enTrack}, CaptionTrack{Language: "fr", URL: frTrack}),
		frTrack: `<transcript><text start="0" dur="1">Il faut 4 pommes</text></transcript>`,
	}}
	var prompts []string
	c := completerFunc(func(req core.CompletionRequest) (string, error) {
		prompts = append(prompts, req.Text)
		return `{"title":"Tarte express","ingredients_text":"4 pommes\n1 pâte","steps_text":"Cuire."}`, nil
	})
	r := NewResolver(f, WithAI(ai.NewParser(c, nil, nil)))

	res := r.Resolve(context.Background(), videoURL)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	rec := res.Recipe
	if rec.SourceType != core.SourceURL || rec.SourceURL != videoURL {
		t.Errorf("source = %q %q", rec.SourceType, rec.SourceURL)
	}
	if rec.ImageURL != "https://i.ytimg.com/vi/"+videoID+"/maxresdefault.jpg" {
		t.Errorf("image = %q", rec.ImageURL)
	}
	if len(prompts) != 1 || !strings.Contains(prompts[0], "Ma recette de tarte.") || !strings.Contains(prompts[0], "Il faut 4 pommes") {
		t.Fatalf("unexpected prompts %q", prompts)
	}
	if f.opts[0].Cookie != ConsentCookie {
		t.Errorf("watch page fetched without consent cookie")
	}
	for _, u := range f.calls {
		if u == enTrack {
			t.Errorf("English captions fetched although French exist")
		}
	}
}

const linkedRecipe = `<html><head><script type="application/ld+json">
{"@type":"Recipe","name":"Tarte express du blog","recipeIngredient":["4 pommes","1 pâte"],"recipeInstructions":"Cuire 30 min."}
</script></head><body></body></html>`

func TestResolve_LinkedPage(t *testing.T) {
	desc := "Abonnez-vous ! https://instagram.com/chef\nRecette complète : https://cuisine.example.fr/tarte-express\nAutre : https://cuisine.example.fr/autre"
	f := &stubFetcher{pages: map[string]string{
		watchURL:                                   watchPage(t, "Tarte express", desc),
		"https://cuisine.example.fr/tarte-express": linkedRecipe,
	}}
	calls := 0
	c := completerFunc(func(req core.CompletionRequest) (string, error) {
		calls++
		return `{"title":"Tarte express"}`, nil
	})
	r := NewResolver(f, WithAI(ai.NewParser(c, nil, nil)))

	res := r.Resolve(context.Background(), videoURL)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.Recipe.Title != "Tarte express du blog" || res.Recipe.SourceURL != videoURL {
		t.Errorf("unexpected recipe %+v", res.Recipe)
	}
	if res.Recipe.ImageURL == "" {
		t.Errorf("thumbnail not attached")
	}
	if calls != 1 {
		t.Errorf("AI called %d times, want 1 (description only)", calls)
	}
	for _, u := range f.calls {
		if strings.Contains(u, "instagram") || strings.HasSuffix(u, "/autre") {
			t.Errorf("unexpected fetch of %s", u)
		}
	}
}

func TestResolve_HeuristicWithoutAI(t *testing.T) {
	desc := "Ingrédients :\n200 g de farine\n2 œufs\nPréparation :\n1. Mélanger\nMon blog : https://cuisine.example.fr"
	f := &stubFetcher{pages: map[string]string{watchURL: watchPage(t, "Crêpes", desc)}}

	res := NewResolver(f).Resolve(context.Background(), videoURL)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.Recipe.Title != "Crêpes" || res.Recipe.Ingredients != "200 g de farine\n2 œufs" || res.Recipe.Steps != "Mélanger" {
		t.Fatalf("unexpected recipe %+v", res.Recipe)
	}
	if res.Recipe.SourceType != core.SourceURL {
		t.Errorf("source type = %q", res.Recipe.SourceType)
	}
}

func TestResolve_Failures(t *testing.T) {
	cases := []struct {
		name string
		url  string
		f    *stubFetcher
		kind core.ErrorKind
		msg  string
	}{
		{"bad url", "https://www.youtube.com/@chef", &stubFetcher{}, core.KindInvalidInput, MsgInvalidVideoURL},
		{"timeout", videoURL, &stubFetcher{errs: map[string]error{watchURL: &fetch.TimeoutError{URL: watchURL}}}, core.KindTimeout, MsgVideoTimeout},
		{"status", videoURL, &stubFetcher{}, core.KindHTTPStatus, MsgVideoStatus(404)},
		{"consent wall", videoURL, &stubFetcher{pages: map[string]string{watchURL: "<html>Before you continue</html>"}}, core.KindExtraction, MsgNotVideoPage},
		{"no recipe", videoURL, &stubFetcher{pages: map[string]string{watchURL: watchPage(t, "Vlog", "")}}, core.KindExtraction, MsgNoRecipeInVideo},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewResolver(c.f).Resolve(context.Background(), c.url)
			if res.Success || res.Kind != c.kind || res.Error != c.msg {
				t.Fatalf("got %+v", res)
			}
		})
	}
}
