package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawStatusServer answers every request with a hand-written status line so
// custom reason phrases survive.
func rawStatusServer(t *testing.T, statusLine, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)

		conn, buf, err := hj.Hijack()
		require.NoError(t, err)
		defer conn.Close()

		_, _ = buf.WriteString(statusLine + "\r\n")
		_, _ = buf.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
		_, _ = buf.WriteString("Connection: close\r\n\r\n")
		_, _ = buf.WriteString(body)
		_ = buf.Flush()
	}))
}

// ── reasonPhrase ────────────────────────────────────────────────────────────

func TestReasonPhrase(t *testing.T) {
	assert.Equal(t, "Not Found", reasonPhrase(404, "404 Not Found"))
	assert.Equal(t, "save_clip_error", reasonPhrase(500, "500 save_clip_error"))
	assert.Equal(t, "", reasonPhrase(200, "200"))
	assert.Equal(t, "", reasonPhrase(0, ""))
}

// ── Do ──────────────────────────────────────────────────────────────────────

func TestRestyTransport_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/clips", r.URL.Path)
		assert.Equal(t, "audio/ogg", r.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Header.Get("sentence_id"))

		payload, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, []byte("OggS"), payload)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"filePrefix":"p"}`))
	}))
	defer srv.Close()

	header := make(http.Header)
	header.Set("Content-Type", "audio/ogg")
	header.Set("sentence_id", "abc")

	resp, err := NewRestyTransport(time.Second).Do(context.Background(), TransportRequest{
		Method: http.MethodPost,
		URL:    srv.URL + "/api/v1/clips",
		Header: header,
		Body:   []byte("OggS"),
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Created", resp.StatusText)
	assert.Equal(t, `{"filePrefix":"p"}`, string(resp.Body))
}

func TestRestyTransport_CustomReasonPhrase(t *testing.T) {
	srv := rawStatusServer(t, "HTTP/1.1 500 save_clip_error", "oops")
	defer srv.Close()

	resp, err := NewRestyTransport(0).Do(context.Background(), TransportRequest{
		Method: http.MethodPost,
		URL:    srv.URL,
	})

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "save_clip_error", resp.StatusText)
	assert.Equal(t, "oops", string(resp.Body))
}

func TestRestyTransport_SessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookieName)
		if assert.NoError(t, err) {
			assert.Equal(t, "tok", c.Value)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := NewRestyTransport(time.Second)
	require.NoError(t, tr.SetSessionCookie(srv.URL, "tok"))

	resp, err := tr.Do(context.Background(), TransportRequest{Method: http.MethodGet, URL: srv.URL + "/api/v1/user_client"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.ErrorIs(t, tr.SetSessionCookie("", "tok"), ErrInvalidOrigin)
}

func TestRestyTransport_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRestyTransport(time.Second).Do(ctx, TransportRequest{Method: http.MethodGet, URL: srv.URL})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRestyTransport_ClearSessionCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(SessionCookieName)
		assert.ErrorIs(t, err, http.ErrNoCookie)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewRestyTransport(time.Second)
	require.NoError(t, tr.SetSessionCookie(srv.URL, "tok"))
	require.NoError(t, tr.ClearSessionCookies())

	_, err := tr.Do(context.Background(), TransportRequest{Method: http.MethodGet, URL: srv.URL})
	require.NoError(t, err)
}

func TestRestyTransport_ServerCookiesPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/set" {
			http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "issued", Path: "/"})
			return
		}
		c, err := r.Cookie(SessionCookieName)
		if assert.NoError(t, err) {
			assert.Equal(t, "issued", c.Value)
		}
	}))
	defer srv.Close()

	tr := NewRestyTransport(time.Second)
	ctx := context.Background()

	_, err := tr.Do(ctx, TransportRequest{Method: http.MethodGet, URL: srv.URL + "/set"})
	require.NoError(t, err)
	_, err = tr.Do(ctx, TransportRequest{Method: http.MethodGet, URL: srv.URL + "/check"})
	require.NoError(t, err)
}

// Run with -race: clearing cookies must not race with requests reading the jar.
func TestRestyTransport_ClearSessionCookiesConcurrentWithDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "v", Path: "/"})
	}))
	defer srv.Close()

	tr := NewRestyTransport(5 * time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := tr.Do(ctx, TransportRequest{Method: http.MethodGet, URL: srv.URL})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, tr.ClearSessionCookies())
			assert.NoError(t, tr.SetSessionCookie(srv.URL, "tok"))
		}()
	}
	wg.Wait()
}
