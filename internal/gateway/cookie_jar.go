package gateway

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// sessionJar is the cookie jar installed on the resty client once. The inner
// jar can be replaced while requests are in flight.
type sessionJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newSessionJar() *sessionJar {
	return &sessionJar{inner: newCookieJar()}
}

// newCookieJar builds a jar with the public suffix list. cookiejar.New only
// fails on options it does not read, so the error is dropped like resty does.
func newCookieJar() *cookiejar.Jar {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

// reset drops every stored cookie.
func (j *sessionJar) reset() {
	jar := newCookieJar()

	j.mu.Lock()
	j.inner = jar
	j.mu.Unlock()
}

var _ http.CookieJar = (*sessionJar)(nil)
