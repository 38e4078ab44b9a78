package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer defines the contract for rendering any supported component (templ, gomponents).
type Renderer interface {
	// RenderComponent renders components back to back into a byte slice.
	RenderComponent(ctx context.Context, components ...interface{}) ([]byte, error)

	// RenderPage writes a full HTTP response made of the given components. A
	// fragment response is the main element followed by any out-of-band swaps.
	RenderPage(c echo.Context, status int, components ...interface{}) error
}

// UniversalRenderer handles rendering for both templ and gomponents components.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode is the structural interface of gomponents.Node.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (ur *UniversalRenderer) render(ctx context.Context, component interface{}, w io.Writer) error {
	switch c := component.(type) {
	case nil:
		return nil
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type: %T", component)
	}
}

// RenderComponent implements Renderer.
func (ur *UniversalRenderer) RenderComponent(ctx context.Context, components ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for _, component := range components {
		if err := ur.render(ctx, component, &buf); err != nil {
			return nil, fmt.Errorf("failed to render component to bytes: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. Components are buffered first so a render
// error can still produce a proper error status.
func (ur *UniversalRenderer) RenderPage(c echo.Context, status int, components ...interface{}) error {
	body, err := ur.RenderComponent(c.Request().Context(), components...)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}
