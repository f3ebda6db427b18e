package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/voice-gateway/internal/app"
	"github.com/MKhiriev/voice-gateway/internal/config"
	"github.com/MKhiriev/voice-gateway/internal/gateway"
	"github.com/MKhiriev/voice-gateway/internal/identity"
	"github.com/MKhiriev/voice-gateway/internal/logger"
	"github.com/MKhiriev/voice-gateway/internal/session"
)

// App owns the client runtime: the persisted session, the identity holder,
// the transport and the request gateway built on top of them.
type App struct {
	store     session.Store
	holder    *identity.Holder
	transport *gateway.RestyTransport
	gateway   *gateway.Gateway
	origin    string

	out io.Writer
	log *logger.Logger

	// reloadMu serialises reloads triggered by concurrent 401s.
	reloadMu sync.Mutex
	reloads  int
}

// NewApp restores the identity from store and wires the gateway. reg may be
// nil, in which case no metrics are collected.
func NewApp(ctx context.Context, cfg config.ClientAPI, store session.Store, reg prometheus.Registerer, out io.Writer, log *logger.Logger) (*App, error) {
	a := &App{
		store:     store,
		holder:    identity.NewHolder(identity.User{}),
		transport: gateway.NewRestyTransport(cfg.RequestTimeout),
		origin:    cfg.Origin,
		out:       out,
		log:       log,
	}

	if err := a.restore(ctx); err != nil {
		return nil, err
	}

	var metrics *gateway.Metrics
	if reg != nil {
		var err error
		if metrics, err = gateway.NewMetrics(reg); err != nil {
			return nil, err
		}
	}

	gw, err := gateway.New(gateway.Options{
		Origin:    cfg.Origin,
		Locale:    cfg.Locale,
		Identity:  a.holder,
		Transport: a.transport,
		Sessions:  store,
		Reloader:  gateway.ReloadFunc(a.Reload),
		Metrics:   metrics,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}
	a.gateway = gw

	return a, nil
}

// Gateway returns the request gateway.
func (a *App) Gateway() *gateway.Gateway {
	return a.gateway
}

// Reloads reports how many times the client was reset.
func (a *App) Reloads() int {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()
	return a.reloads
}

// User returns the identity requests are currently made for.
func (a *App) User() identity.User {
	return a.holder.Current()
}

// Reload re-initialises the client after the backend rejected the session:
// cookies are dropped and the identity is restored from the (now cleared)
// session store, which yields a fresh anonymous client id.
func (a *App) Reload(ctx context.Context) {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	a.reloads++
	if err := a.transport.ClearSessionCookies(); err != nil {
		a.log.Err(err).Str("func", "App.Reload").Msg("failed to drop session cookies")
	}
	if err := a.restore(ctx); err != nil {
		a.log.Err(err).Str("func", "App.Reload").Msg("failed to restore identity")
		a.holder.Set(identity.User{ClientID: identity.NewClientID()})
		return
	}

	a.log.Info().Str("func", "App.Reload").Str("client_id", a.holder.Current().ClientID).Msg("client reloaded")
}

// SignIn stores the backend session token and switches to the account.
func (a *App) SignIn(ctx context.Context, token string) (identity.User, error) {
	u, err := identity.SignIn(ctx, a.store, a.holder.Current(), token)
	if err != nil {
		return identity.User{}, err
	}

	if err = a.transport.SetSessionCookie(a.origin, u.Account.Token); err != nil {
		return identity.User{}, err
	}

	a.holder.Set(u)
	return u, nil
}

// SignOut forgets the account but keeps the anonymous client id.
func (a *App) SignOut(ctx context.Context) error {
	u := identity.User{ClientID: a.holder.Current().ClientID}
	if err := a.transport.ClearSessionCookies(); err != nil {
		return err
	}

	if err := identity.Persist(ctx, a.store, u); err != nil {
		return err
	}
	a.holder.Set(u)
	return nil
}

func (a *App) restore(ctx context.Context) error {
	u, err := identity.Restore(ctx, a.store)
	if errors.Is(err, identity.ErrCorruptSession) || errors.Is(err, identity.ErrInvalidToken) {
		a.log.Warn().Err(err).Str("func", "App.restore").Msg(app.MsgUnusableSession)
		if err = a.store.Remove(ctx, identity.SessionKey); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		u, err = identity.Restore(ctx, a.store)
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if u.Authenticated() {
		if err = a.transport.SetSessionCookie(a.origin, u.Account.Token); err != nil {
			return err
		}
	}

	a.holder.Set(u)
	return nil
}
