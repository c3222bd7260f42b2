package report

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGotenberg(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"up"}`))
	})
	mux.HandleFunc("/forms/chromium/convert/html", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "chromium crashed", http.StatusInternalServerError)
			return
		}
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "true", r.FormValue("printBackground"))
		files := r.MultipartForm.File["files"]
		if !assert.Len(t, files, 1) {
			return
		}
		assert.Equal(t, "index.html", files[0].Filename)
		f, err := files[0].Open()
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		html, _ := io.ReadAll(f)
		_, _ = w.Write(append([]byte("%PDF-"), html...))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderHTML(t *testing.T) {
	srv := fakeGotenberg(t, true)
	client := NewClient(srv.URL + "/")

	pdf, err := client.RenderHTML(context.Background(), "<h1>INV-0001</h1>")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-<h1>INV-0001</h1>", string(pdf))
	require.NoError(t, client.Ping(context.Background()))
}

func TestRenderHTMLFailure(t *testing.T) {
	srv := fakeGotenberg(t, false)
	client := NewClient(srv.URL)

	_, err := client.RenderHTML(context.Background(), "<p>x</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "chromium crashed")
	assert.Error(t, client.Ping(context.Background()))
}

func TestPingHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tc := range []struct {
		healthy bool
		want    int
	}{{true, http.StatusOK}, {false, http.StatusServiceUnavailable}} {
		srv := fakeGotenberg(t, tc.healthy)
		r := chi.NewRouter()
		r.Route("/report", NewHandler(NewClient(srv.URL), logger).MountRoutes)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/report/ping", nil))
		assert.Equal(t, tc.want, rr.Code)
	}
}
