package app

import (
	"fmt"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/pageview"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/nfrund/authforms/internal/server"
	"github.com/samber/do/v2"
	"golang.org/x/text/message/catalog"
)

// NewInjector registers every service the application needs. Services are
// built lazily the first time they are invoked.
func NewInjector(cfg *config.Config) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, newCatalog)
	do.Provide(i, newRenderer)
	do.Provide(i, newPageStore)
	do.Provide(i, newPageHandler)
	do.Provide(i, newServer)

	return i
}

// NewServer builds the configured server.
func NewServer(cfg *config.Config) (*server.Server, error) {
	return do.Invoke[*server.Server](NewInjector(cfg))
}

func newCatalog(i do.Injector) (catalog.Catalog, error) {
	return messages.NewCatalog()
}

func newRenderer(i do.Injector) (rendering.Renderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func newPageHandler(i do.Injector) (*handlers.PageHandler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	store, err := do.Invoke[pageview.Store](i)
	if err != nil {
		return nil, err
	}
	return handlers.NewPageHandler(
		store,
		do.MustInvoke[rendering.Renderer](i),
		do.MustInvoke[catalog.Catalog](i),
		cfg.HtmxURL,
	), nil
}

func newServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	pages, err := do.Invoke[*handlers.PageHandler](i)
	if err != nil {
		return nil, err
	}
	static, err := server.StaticFiles(cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	p := messages.PrinterFor(do.MustInvoke[catalog.Catalog](i))
	return server.New(cfg, do.MustInvoke[pageview.Store](i), pages, static, p.Sprintf(messages.TooManySubmissions)), nil
}
