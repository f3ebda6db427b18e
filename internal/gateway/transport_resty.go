package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SessionCookieName is the cookie the backend authenticates accounts with.
const SessionCookieName = "session"

// RestyTransport is the production [Transport]. The underlying resty client
// keeps a cookie jar, so session cookies set for the origin travel with
// every same-origin request. It never retries.
type RestyTransport struct {
	client *resty.Client
	jar    *sessionJar
}

// NewRestyTransport returns a transport with the given timeout; zero keeps
// the net/http default of no deadline.
func NewRestyTransport(timeout time.Duration) *RestyTransport {
	jar := newSessionJar()
	client := resty.New().SetRetryCount(0).SetCookieJar(jar)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &RestyTransport{client: client, jar: jar}
}

// SetSessionCookie stores the account session token in the cookie jar for
// origin.
func (t *RestyTransport) SetSessionCookie(origin, token string) error {
	u, err := normalizeBaseURL(origin)
	if err != nil {
		return err
	}

	t.jar.SetCookies(u, []*http.Cookie{{Name: SessionCookieName, Value: token, Path: "/"}})
	return nil
}

// ClearSessionCookies drops every stored cookie. It is safe to call while
// requests are in flight.
func (t *RestyTransport) ClearSessionCookies() error {
	t.jar.reset()
	return nil
}

// Do implements [Transport].
func (t *RestyTransport) Do(ctx context.Context, req TransportRequest) (*TransportResponse, error) {
	r := t.client.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", strings.ToLower(req.Method), err)
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode(),
		StatusText: reasonPhrase(resp.StatusCode(), resp.Status()),
		Body:       resp.Body(),
	}, nil
}

// reasonPhrase strips the numeric code from a status line ("404 Not Found"
// -> "Not Found").
func reasonPhrase(code int, status string) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}

var _ Transport = (*RestyTransport)(nil)
