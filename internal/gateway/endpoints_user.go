package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/voice-gateway/models"
)

func (g *Gateway) userClientRoot() string {
	return g.APIRoot() + "/user_client"
}

// localeScoped is the user_client sub-resource, prefixed with the locale
// when the gateway has one.
func (g *Gateway) localeScoped(resource string) string {
	if g.locale == "" {
		return g.userClientRoot() + "/" + resource
	}
	return g.userClientRoot() + "/" + g.locale + "/" + resource
}

func (g *Gateway) FetchUserClients(ctx context.Context) ([]models.UserClient, error) {
	var clients []models.UserClient
	err := g.fetchJSON(ctx, Request{Path: g.APIRoot() + "/user_clients"}, &clients)
	return clients, err
}

// FetchAccount returns the signed-in account, or nil when the backend knows
// no account for this session.
func (g *Gateway) FetchAccount(ctx context.Context) (*models.UserClient, error) {
	var account *models.UserClient
	err := g.fetchJSON(ctx, Request{Path: g.userClientRoot()}, &account)
	return account, err
}

func (g *Gateway) SaveAccount(ctx context.Context, account models.UserClient) (*models.UserClient, error) {
	var saved *models.UserClient
	err := g.fetchJSON(ctx, Request{
		Method: http.MethodPatch,
		Path:   g.userClientRoot(),
		Body:   JSONBody(account),
	}, &saved)
	return saved, err
}

// ClaimAccount attaches the contributions of the anonymous client id to the
// signed-in account.
func (g *Gateway) ClaimAccount(ctx context.Context) error {
	clientID := g.identity.Current().ClientID
	if clientID == "" {
		return fmt.Errorf("claim account: no client id")
	}

	_, err := g.Dispatch(ctx, Request{
		Path: g.APIRoot() + "/user_clients/" + url.PathEscape(clientID) + "/claim",
	})
	return err
}

// SaveAvatar sets the avatar source. Only [models.AvatarFile] carries an
// image. The backend answer is returned as raw text; see [ParseAvatarResult].
func (g *Gateway) SaveAvatar(ctx context.Context, kind models.AvatarKind, image []byte, contentType string) (string, error) {
	body := NoBody()
	if kind == models.AvatarFile {
		body = BinaryBody(image, contentType)
	}

	return g.fetchText(ctx, Request{
		Method: http.MethodPost,
		Path:   g.userClientRoot() + "/avatar/" + url.PathEscape(string(kind)),
		Body:   body,
	})
}

// ParseAvatarResult decodes the text answer of [Gateway.SaveAvatar].
func ParseAvatarResult(text string) (models.AvatarResult, error) {
	var result models.AvatarResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &result); err != nil {
		return models.AvatarResult{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return result, nil
}

func (g *Gateway) SaveAvatarClip(ctx context.Context, audio []byte, contentType string) (json.RawMessage, error) {
	var result json.RawMessage
	err := g.fetchJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   g.userClientRoot() + "/avatar_clip",
		Body:   BinaryBody(audio, contentType),
	}, &result)
	return result, err
}

// FetchAvatarClip returns the URL of the account's avatar clip, empty when
// none is set.
func (g *Gateway) FetchAvatarClip(ctx context.Context) (string, error) {
	var clipURL *string
	if err := g.fetchJSON(ctx, Request{Path: g.userClientRoot() + "/avatar_clip"}, &clipURL); err != nil {
		return "", err
	}
	if clipURL == nil {
		return "", nil
	}
	return *clipURL, nil
}

func (g *Gateway) RemoveAvatarClip(ctx context.Context) error {
	_, err := g.Dispatch(ctx, Request{Path: g.userClientRoot() + "/avatar_clip/delete"})
	return err
}

func (g *Gateway) FetchGoals(ctx context.Context) (models.Goals, error) {
	var goals models.Goals
	err := g.fetchJSON(ctx, Request{Path: g.localeScoped("goals")}, &goals)
	return goals, err
}

func (g *Gateway) CreateGoal(ctx context.Context, goal models.Goal) (models.Goals, error) {
	var goals models.Goals
	err := g.fetchJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   g.localeScoped("goals"),
		Body:   JSONBody(goal),
	}, &goals)
	return goals, err
}

func (g *Gateway) FetchAwards(ctx context.Context) (models.Awards, error) {
	var awards models.Awards
	err := g.fetchJSON(ctx, Request{Path: g.localeScoped("awards")}, &awards)
	return awards, err
}

// SeenAwards acknowledges either the awards themselves or their
// notification.
func (g *Gateway) SeenAwards(ctx context.Context, kind models.AwardKind) error {
	_, err := g.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   g.userClientRoot() + "/awards/seen",
		Body:   JSONBody(map[string]models.AwardKind{"kind": kind}),
	})
	return err
}
