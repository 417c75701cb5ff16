package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crguezl/tinyclonec/internal/app"
	"github.com/crguezl/tinyclonec/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:        0,
		BaseURL:     "http://short.example", // pages build short links from this
		DatabaseURL: ":memory:",
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	srv := httptest.NewServer(a.Router)
	cleanup := func() {
		srv.Close()
		_ = a.Close()
	}
	return srv, cleanup
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, []byte) {
	t.Helper()
	res, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	data, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	return res, data
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) (*http.Response, []byte) {
	t.Helper()
	res, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	data, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	return res, data
}

func postJSON(t *testing.T, client *http.Client, url string, body any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	data, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	return res, data
}

func wantContains(t *testing.T, body []byte, sub string) {
	t.Helper()
	if !strings.Contains(string(body), sub) {
		t.Fatalf("body does not contain %q:\n%s", sub, string(body))
	}
}

func TestTinyclonec_EndToEnd(t *testing.T) {
	ts, done := newTestServer(t)
	defer done()

	base := ts.URL

	// 1) Health
	{
		res, body := get(t, ts.Client(), base+"/health")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("health: status=%d body=%s", res.StatusCode, string(body))
		}
	}

	// 2) Front page shows the submission form
	{
		res, body := get(t, ts.Client(), base+"/")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("front page: status=%d", res.StatusCode)
		}
		wantContains(t, body, `name="url"`)
		wantContains(t, body, `method="post"`)
	}

	// 3) Stylesheet is served for the pages
	{
		res, body := get(t, ts.Client(), base+"/stylesheet.css")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("stylesheet: status=%d", res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Fatalf("stylesheet: content-type=%q", ct)
		}
		wantContains(t, body, ".container")
	}

	// 4) Submitting a fresh URL shows its short link (first id is 1)
	{
		res, body := postForm(t, ts.Client(), base+"/", url.Values{"url": {"https://go.dev/"}})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("submit: status=%d body=%s", res.StatusCode, string(body))
		}
		wantContains(t, body, "http://short.example/1")
		wantContains(t, body, `/info/1`)
	}

	// 5) Submitting the same URL again returns the same short link
	{
		_, body := postForm(t, ts.Client(), base+"/", url.Values{"url": {"https://go.dev/"}})
		wantContains(t, body, "http://short.example/1")
		if strings.Contains(string(body), "short.example/2") {
			t.Fatalf("duplicate submit minted a new code:\n%s", string(body))
		}
	}

	// 6) Validation failures re-render the form with the messages
	{
		res, body := postForm(t, ts.Client(), base+"/", url.Values{"url": {""}})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("empty url: status=%d", res.StatusCode)
		}
		wantContains(t, body, "You must specify a URL.")
	}
	{
		_, body := postForm(t, ts.Client(), base+"/", url.Values{"url": {"www.example.com"}})
		wantContains(t, body, "The URL must start with http://, https://, or ftp://.")
		wantContains(t, body, `value="www.example.com"`) // submitted value survives
	}
	{
		long := "https://example.com/" + strings.Repeat("x", 4096)
		_, body := postForm(t, ts.Client(), base+"/", url.Values{"url": {long}})
		wantContains(t, body, "That URL is too long.")
	}

	// 7) Metadata before any redirect: zero views
	{
		res, body := get(t, ts.Client(), base+"/api/links/1")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("metadata: status=%d body=%s", res.StatusCode, string(body))
		}
		var meta struct {
			ViewCount int64 `json:"view_count"`
		}
		_ = json.Unmarshal(body, &meta)
		if meta.ViewCount != 0 {
			t.Fatalf("expected view_count=0, got %d", meta.ViewCount)
		}
	}

	// 8) Redirect (do NOT follow; inspect Location)
	nfClient := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	{
		res, _ := nfClient.Get(base + "/1")
		if res.StatusCode != http.StatusFound {
			t.Fatalf("redirect: expected 302, got %d", res.StatusCode)
		}
		if loc := res.Header.Get("Location"); loc != "https://go.dev/" {
			t.Fatalf("redirect: bad Location %q", loc)
		}
	}

	// 9) The view is counted before the redirect is sent, once per visit
	{
		res, body := get(t, ts.Client(), base+"/api/links/1")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("metadata 2: status=%d", res.StatusCode)
		}
		var meta struct {
			ViewCount int64 `json:"view_count"`
		}
		_ = json.Unmarshal(body, &meta)
		if meta.ViewCount != 1 {
			t.Fatalf("expected view_count=1 after one redirect, got %d", meta.ViewCount)
		}

		_, _ = nfClient.Get(base + "/1")
		_, body = get(t, ts.Client(), base+"/api/links/1")
		_ = json.Unmarshal(body, &meta)
		if meta.ViewCount != 2 {
			t.Fatalf("expected view_count=2 after two redirects, got %d", meta.ViewCount)
		}
	}

	// 10) Info page shows the destination and the count, without counting
	{
		res, body := get(t, ts.Client(), base+"/info/1")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("info: status=%d", res.StatusCode)
		}
		wantContains(t, body, "https://go.dev/")
		wantContains(t, body, "<td>2</td>")

		_, body2 := get(t, ts.Client(), base+"/api/links/1")
		var meta struct {
			ViewCount int64 `json:"view_count"`
		}
		_ = json.Unmarshal(body2, &meta)
		if meta.ViewCount != 2 {
			t.Fatalf("info page changed the view count: %d", meta.ViewCount)
		}
	}

	// 11) Codes that do not resolve are 404s
	{
		res, _ := nfClient.Get(base + "/zz") // well-formed, never assigned
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("unassigned code: expected 404, got %d", res.StatusCode)
		}
		res2, _ := nfClient.Get(base + "/abc_def") // not base-36 at all
		if res2.StatusCode != http.StatusNotFound {
			t.Fatalf("malformed code: expected 404, got %d", res2.StatusCode)
		}
		res3, _ := get(t, ts.Client(), base+"/info/zz")
		if res3.StatusCode != http.StatusNotFound {
			t.Fatalf("info for unknown code: expected 404, got %d", res3.StatusCode)
		}
	}

	// 12) JSON API: 201 for a fresh url, 200 for a repeat
	{
		res, body := postJSON(t, ts.Client(), base+"/api/links", map[string]any{
			"url": "https://pkg.go.dev/",
		})
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("api create: status=%d body=%s", res.StatusCode, string(body))
		}
		var out struct {
			Code     string `json:"code"`
			ShortURL string `json:"short_url"`
		}
		_ = json.Unmarshal(body, &out)
		if out.Code != "2" || out.ShortURL != "http://short.example/2" {
			t.Fatalf("api create: bad payload: %s", string(body))
		}

		res2, body2 := postJSON(t, ts.Client(), base+"/api/links", map[string]any{
			"url": "https://pkg.go.dev/",
		})
		if res2.StatusCode != http.StatusOK {
			t.Fatalf("api repeat: expected 200, got %d body=%s", res2.StatusCode, string(body2))
		}
	}

	// 13) JSON API validation carries the same messages
	{
		res, body := postJSON(t, ts.Client(), base+"/api/links", map[string]any{
			"url": "gopher://example.com",
		})
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("api invalid: expected 400, got %d", res.StatusCode)
		}
		var out struct {
			Errors []string `json:"errors"`
		}
		_ = json.Unmarshal(body, &out)
		if len(out.Errors) != 1 || out.Errors[0] != "The URL must start with http://, https://, or ftp://." {
			t.Fatalf("api invalid: bad errors: %s", string(body))
		}
	}

	// 14) Front page lists the recent links, newest first
	{
		_, body := get(t, ts.Client(), base+"/")
		first := strings.Index(string(body), `href="/2"`)
		second := strings.Index(string(body), `href="/1"`)
		if first == -1 || second == -1 {
			t.Fatalf("recent list missing codes:\n%s", string(body))
		}
		if first > second {
			t.Fatalf("recent list not newest first")
		}
	}
}
