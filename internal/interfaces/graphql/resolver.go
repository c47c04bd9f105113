package graphql

import (
	"context"
	"sync"

	"go.uber.org/zap"

	app "github.com/storefront/bridge/internal/application/storefront"
	"github.com/storefront/bridge/internal/domain/storefront"
	"github.com/storefront/bridge/internal/infrastructure/i18n"
	"github.com/storefront/bridge/internal/infrastructure/session"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// WithSession attaches the shopper session to the resolver context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, sess)
}

// sessionFrom returns the shopper session from the context. The session
// middleware guarantees one on every request reaching the schema.
func sessionFrom(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionCtxKey).(*session.Session); ok {
		return sess
	}
	return session.New()
}

// Resolver holds the services the schema resolves against.
type Resolver struct {
	catalog  *app.CatalogService
	cart     *app.CartService
	checkout *app.CheckoutService
	customer *app.CustomerService
	order    *app.OrderService
	logger   *zap.Logger

	formatters sync.Map // locale -> *i18n.MoneyFormatter
}

// NewResolver creates a Resolver.
func NewResolver(
	catalog *app.CatalogService,
	cart *app.CartService,
	checkout *app.CheckoutService,
	customer *app.CustomerService,
	order *app.OrderService,
	logger *zap.Logger,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		customer: customer,
		order:    order,
		logger:   logger.Named("graphql"),
	}
}

// formatMoney renders an amount in the store locale. Formatting is display
// sugar: a failed locale lookup falls back to English rather than failing
// the query.
func (r *Resolver) formatMoney(ctx context.Context, m storefront.Money) string {
	locale := "en_US"
	if cfg, err := r.catalog.StoreConfig(ctx); err == nil && cfg.Locale != "" {
		locale = cfg.Locale
	}

	if f, ok := r.formatters.Load(locale); ok {
		return f.(*i18n.MoneyFormatter).Format(m)
	}
	f := i18n.NewMoneyFormatter(locale)
	r.formatters.Store(locale, f)
	return f.Format(m)
}
