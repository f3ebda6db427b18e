package gateway

import (
	"context"
	"net/url"
	"strings"
)

// componentUnescaper restores the characters a browser's encodeURIComponent
// leaves as-is but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent percent-encodes s with the browser's
// encodeURIComponent alphabet, which is what the backend decodes header
// values with.
func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// fetchJSON dispatches req and decodes the JSON body into out.
func (g *Gateway) fetchJSON(ctx context.Context, req Request, out any) error {
	resp, err := g.Dispatch(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// fetchText dispatches req in text mode and returns the raw body.
func (g *Gateway) fetchText(ctx context.Context, req Request) (string, error) {
	req.Mode = ContentText
	resp, err := g.Dispatch(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
