package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestTitle(t *testing.T) {
	doc := mustDoc(t, "<html><head><title>  Hello  </title></head><body></body></html>")
	if got := Title(doc); got != "Hello" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestTitle_Missing(t *testing.T) {
	doc := mustDoc(t, "<html><body><p>no head title</p></body></html>")
	if got := Title(doc); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

func TestText_PrefersMainAndSkipsBoilerplate(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<nav>Menu Home About</nav>
<main>
  <h1>Heading</h1>
  <p>First   paragraph.</p>
  <script>var tracked = true;</script>
  <ul><li>one</li><li>two</li></ul>
</main>
<footer>copyright</footer>
</body></html>`)
	got := Text(doc)
	for _, want := range []string{"Heading", "First paragraph.", "one", "two"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	for _, banned := range []string{"Menu", "tracked", "copyright"} {
		if strings.Contains(got, banned) {
			t.Fatalf("boilerplate %q leaked into %q", banned, got)
		}
	}
}

func TestText_FallsBackToBody(t *testing.T) {
	doc := mustDoc(t, "<html><body><p>plain body text</p></body></html>")
	if got := Text(doc); got != "plain body text" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	doc := mustDoc(t, "<html><body><h1>Title</h1><p>Some <b>bold</b> text.</p></body></html>")
	md, err := Markdown(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "# Title") {
		t.Fatalf("expected heading in markdown, got %q", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Fatalf("expected bold span in markdown, got %q", md)
	}
}
