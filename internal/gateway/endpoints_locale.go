package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/voice-gateway/models"
)

// defaultDocumentLocale is used for legal documents when the gateway is not
// locale scoped.
const defaultDocumentLocale = "en"

// FetchLocaleMessages returns the Fluent message catalogue of locale. It is
// served by the web origin, not the API.
func (g *Gateway) FetchLocaleMessages(ctx context.Context, locale string) (string, error) {
	canonical, err := canonicalLocale(locale)
	if err != nil {
		return "", err
	}
	if canonical == "" {
		return "", fmt.Errorf("%w: empty locale", ErrInvalidLocale)
	}

	return g.fetchText(ctx, Request{Path: "/locales/" + canonical + "/messages.ftl"})
}

// FetchDocument returns a legal document as HTML in the gateway's locale,
// falling back to English.
func (g *Gateway) FetchDocument(ctx context.Context, name models.Document) (string, error) {
	switch name {
	case models.DocumentPrivacy, models.DocumentTerms:
	default:
		return "", fmt.Errorf("unknown document %q", name)
	}

	locale := g.locale
	if locale == "" {
		locale = defaultDocumentLocale
	}

	return g.fetchText(ctx, Request{Path: "/" + string(name) + "/" + locale + ".html"})
}

func (g *Gateway) FetchRequestedLanguages(ctx context.Context) ([]string, error) {
	var languages []string
	err := g.fetchJSON(ctx, Request{Path: g.APIRoot() + "/requested_languages"}, &languages)
	return languages, err
}

// RequestLanguage asks for a language that is not on the platform yet.
func (g *Gateway) RequestLanguage(ctx context.Context, language string) error {
	_, err := g.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   g.APIRoot() + "/requested_languages",
		Body:   JSONBody(models.LanguageRequest{Language: language}),
	})
	return err
}

func (g *Gateway) FetchLanguageStats(ctx context.Context) (models.LanguageStats, error) {
	var stats models.LanguageStats
	err := g.fetchJSON(ctx, Request{Path: g.APIRoot() + "/language_stats"}, &stats)
	return stats, err
}

// SubscribeToNewsletter subscribes email to the newsletter. Failures are
// reported in the result; only session expiry comes back as an error.
func (g *Gateway) SubscribeToNewsletter(ctx context.Context, email string) (models.NewsletterResult, error) {
	resp, err := g.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   g.APIRoot() + "/newsletter/" + url.PathEscape(email),
		Policy: ReturnFailure,
	})
	if err != nil {
		return models.NewsletterResult{}, err
	}
	return models.NewsletterResult{Failure: resp.Failure}, nil
}

// Report flags a sentence or a clip.
func (g *Gateway) Report(ctx context.Context, report models.Report) error {
	_, err := g.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   g.APIRoot() + "/reports",
		Body:   JSONBody(report),
	})
	return err
}
