package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDocumentSendsBrowserHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	if _, err := NewFetcher().Document(context.Background(), srv.URL); err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("User-Agent = %q, want browser-like", gotUA)
	}
}

func TestDocumentRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Document(context.Background(), srv.URL); err == nil {
		t.Fatal("want error on 404")
	}
}

func TestSpeechTextSelectorCascade(t *testing.T) {
	content := strings.Repeat("The outlook for inflation and the policy rate. ", 20)
	page := `<html><body>
<nav>Site navigation junk</nav>
<div class="main-content">` + content + `</div>
<footer>Contact | Privacy</footer>
</body></html>`
	srv := serveHTML(t, page)

	got, err := NewFetcher().SpeechText(context.Background(), srv.URL,
		[]string{"div.speech-body", "div.main-content"}, []string{"inflation"})
	if err != nil {
		t.Fatalf("SpeechText: %v", err)
	}
	if !strings.Contains(got, "outlook for inflation") {
		t.Errorf("SpeechText missed content: %q", got)
	}
	if strings.Contains(got, "navigation") {
		t.Errorf("clutter not stripped: %q", got)
	}
}

func TestSpeechTextThinSelectorFallsThrough(t *testing.T) {
	// The matching selector holds a stub; body fallback must recover the text.
	content := strings.Repeat("Bank Rate and the inflation outlook were discussed. ", 20)
	page := `<html><body>
<div class="main-content">stub</div>
<div class="other">` + content + `</div>
</body></html>`
	srv := serveHTML(t, page)

	got, err := NewFetcher().SpeechText(context.Background(), srv.URL,
		[]string{"div.main-content"}, []string{"inflation"})
	if err != nil {
		t.Fatalf("SpeechText: %v", err)
	}
	if !strings.Contains(got, "inflation outlook") {
		t.Errorf("body fallback missed content: %q", got)
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestFlatText(t *testing.T) {
	doc := mustDoc(t, "<div><p>First  line</p><p>Second\nline</p></div>")
	got := flatText(doc.Find("div"))
	if got != "First line Second line" {
		t.Errorf("flatText = %q", got)
	}
}

func TestBlockText(t *testing.T) {
	doc := mustDoc(t, "<div><p>Andrew Bailey: He spoke.</p><p>Megan Greene: She spoke.</p></div>")
	got := blockText(doc.Find("div"))
	if !strings.Contains(got, "He spoke.\n") {
		t.Errorf("blockText should break at paragraphs: %q", got)
	}
	if !strings.HasPrefix(got, "Andrew Bailey:") {
		t.Errorf("blockText = %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://bank.example", "/speech/x", "https://bank.example/speech/x"},
		{"https://bank.example", "https://other.example/y", "https://other.example/y"},
		{"https://bank.example", "speech/z", "https://bank.example/speech/z"},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.base, tt.href); got != tt.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
