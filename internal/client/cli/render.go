package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns assistant markdown into terminal output.
type Renderer interface {
	Render(markdown string) (string, error)
}

type plainRenderer struct{}

func (plainRenderer) Render(md string) (string, error) { return md, nil }

func newRenderer(markdown bool) (Renderer, error) {
	if !markdown {
		return plainRenderer{}, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// render falls back to the raw text when markdown rendering fails.
func (a *App) render(md string) string {
	out, err := a.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
