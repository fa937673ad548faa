package newsfeed

import (
	"testing"

	"finance-tracker/internal/domain"
)

func TestNormalizeURL_StripsTrackingParams(t *testing.T) {
	got := NormalizeURL("https://Example.com/story/?utm_source=x&id=7")
	want := "https://example.com/story?id=7"
	if got != want {
		t.Errorf("NormalizeURL: got %q, want %q", got, want)
	}
}

func TestNormalizeURL_DropsEmptyQuery(t *testing.T) {
	got := NormalizeURL("https://example.com/a?utm_source=x&utm_medium=y")
	want := "https://example.com/a"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeURL_RemovesEmptyValuedParams(t *testing.T) {
	got := NormalizeURL("https://example.com/a?id=7&ref=")
	want := "https://example.com/a?id=7"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeURL_KeepsRootSlash(t *testing.T) {
	// A path of exactly "/" is not a removable trailing slash.
	got := NormalizeURL("https://example.com/")
	want := "https://example.com/"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeURL_RelativeOrEmpty(t *testing.T) {
	if got := NormalizeURL(""); got != "" {
		t.Errorf("empty input: got %q", got)
	}
	if got := NormalizeURL("/just/a/path"); got != "" {
		t.Errorf("relative input: got %q", got)
	}
}

func TestTitleSignature_StripsPunctuation(t *testing.T) {
	got := TitleSignature("Bitcoin Hits $100K!! — Analysts React")
	want := "bitcoin hits 100k analysts react"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTitleSignature_FoldsDiacritics(t *testing.T) {
	got := TitleSignature("Café économie: Über Bitcoin")
	want := "cafe economie uber bitcoin"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTitleSignature_TruncatesToTwelveTokens(t *testing.T) {
	got := TitleSignature("a b c d e f g h i j k l m n o")
	want := "a b c d e f g h i j k l"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_Precedence(t *testing.T) {
	withLink := &domain.NewsRecord{Title: "Some Title", Link: "https://example.com/x", ID: "id-1"}
	if got := Normalize(withLink); got != CanonicalKey("https://example.com/x") {
		t.Errorf("URL should win: got %q", got)
	}

	titleOnly := &domain.NewsRecord{Title: "Some Title", ID: "id-1"}
	if got := Normalize(titleOnly); got != CanonicalKey("some title") {
		t.Errorf("title should win without a link: got %q", got)
	}

	idOnly := &domain.NewsRecord{ID: "id-1"}
	if got := Normalize(idOnly); got != CanonicalKey("id-1") {
		t.Errorf("id should win without link and title: got %q", got)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	r := &domain.NewsRecord{Title: "Märkte im Überblick", Link: "https://example.com/a/?utm_campaign=z&id=1"}
	first := Normalize(r)
	second := Normalize(r)
	if first != second {
		t.Errorf("normalize not deterministic: %q vs %q", first, second)
	}
}

func TestNormalize_FallbackNeverMerges(t *testing.T) {
	// No link, no title, no id: each call must mint a fresh key so two
	// such records are never considered duplicates.
	a := Normalize(&domain.NewsRecord{})
	b := Normalize(&domain.NewsRecord{})
	if a == b {
		t.Errorf("fallback keys collided: %q", a)
	}
}
