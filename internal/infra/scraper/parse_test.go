package scraper_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"social-news/internal/infra/scraper"
)

const base = "https://www.bbc.co.uk/news"

func TestParse_DuplicateAndVideo(t *testing.T) {
	markup := `<a href="/news/uk-12345678">Story</a>` +
		`<a href="/news/uk-12345678">Story</a>` +
		`<a href="/news/video-87654321">Video clip</a>`

	got := scraper.ParseAll(base, markup)

	want := []scraper.Headline{{URL: base + "/news/uk-12345678", Title: "Story"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headlines mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FiltersNonArticleLinks(t *testing.T) {
	markup := `<html><body>
  <a href="/news/world-68345678"><span>Aukus deal</span></a>
  <a href="/sport/football-12345678">Football</a>
  <a href="/news/uk-1234">Short id</a>
  <a href="https://www.bbc.co.uk/news/uk-23456789">Absolute</a>
  <a href="/news/business-3456789x">Not numeric</a>
  <a>No href</a>
  <a href="">Empty href</a>
  <a href="/news/uk-99999999"><img src="x.png"></a>
  <a href="/news/politics-45678901">  Budget: Pensions  </a>
</body></html>`

	got := scraper.ParseAll(base, markup)

	want := []scraper.Headline{
		{URL: base + "/news/world-68345678", Title: "Aukus deal"},
		{URL: base + "/news/politics-45678901", Title: "Budget: Pensions"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headlines mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TrimsTitleBeforeVideoCheck(t *testing.T) {
	markup := `<a href="/news/av/uk-11111111">
    Video: Storm hits coast</a>` +
		`<a href="/news/uk-22222222">  Video  </a>` +
		`<a href="/news/uk-33333333">   </a>` +
		`<a href="/news/uk-44444444">
    Floods close roads
  </a>`

	got := scraper.ParseAll(base, markup)

	want := []scraper.Headline{{URL: base + "/news/uk-44444444", Title: "Floods close roads"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headlines mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SameHrefDifferentTitleKeepsFirst(t *testing.T) {
	markup := `<a href="/news/uk-12345678">First</a><a href="/news/uk-12345678">Second</a>`

	got := scraper.ParseAll(base, markup)
	if len(got) != 1 || got[0].Title != "First" {
		t.Errorf("got %+v, want only the first anchor", got)
	}
}

func TestParse_IsRestartable(t *testing.T) {
	markup := `<a href="/news/uk-12345678">One</a><a href="/news/uk-87654321">Two</a>`
	seq := scraper.Parse(base, markup)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	if len(first) != 2 {
		t.Errorf("len = %d, want 2", len(first))
	}
}

func TestParse_StopsEarly(t *testing.T) {
	markup := `<a href="/news/uk-12345678">One</a><a href="/news/uk-87654321">Two</a>`

	var got []string
	for h := range scraper.Parse(base, markup) {
		got = append(got, h.Title)
		break
	}
	if !slices.Equal(got, []string{"One"}) {
		t.Errorf("got %v", got)
	}
}

func TestParse_EmptyMarkup(t *testing.T) {
	if got := scraper.ParseAll(base, ""); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

/* ───────── predicates ───────── */

func TestHasNewsSegment(t *testing.T) {
	tests := map[string]bool{
		"/news/uk-12345678":   true,
		"news/a":              true,
		"/sport/uk-12345678":  false,
		"/newsbeat/123456789": false,
	}
	for href, want := range tests {
		if got := scraper.HasNewsSegment(href); got != want {
			t.Errorf("HasNewsSegment(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestHasArticleIDSuffix(t *testing.T) {
	tests := map[string]bool{
		"/news/uk-12345678": true,
		"12345678":          true,
		"1234567":           false,
		"/news/uk-1234567a": false,
		"/news/uk-١٢٣٤٥٦٧٨": false,
		"":                  false,
	}
	for href, want := range tests {
		if got := scraper.HasArticleIDSuffix(href); got != want {
			t.Errorf("HasArticleIDSuffix(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestIsAbsoluteLink(t *testing.T) {
	tests := map[string]bool{
		"http://bbc.co.uk/news/uk-12345678":  true,
		"https://bbc.co.uk/news/uk-12345678": true,
		"/news/uk-12345678":                  false,
		"//bbc.co.uk/news/uk-12345678":       false,
	}
	for href, want := range tests {
		if got := scraper.IsAbsoluteLink(href); got != want {
			t.Errorf("IsAbsoluteLink(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestIsVideoTitle(t *testing.T) {
	tests := map[string]bool{
		"Video clip":       true,
		"Video":            true,
		"video clip":       false,
		"Watch: Video":     false,
		"Videogames boost": true,
	}
	for text, want := range tests {
		if got := scraper.IsVideoTitle(text); got != want {
			t.Errorf("IsVideoTitle(%q) = %v, want %v", text, got, want)
		}
	}
}
