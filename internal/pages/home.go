package pages

import (
	"context"
	"io"
)

// Home is the landing page.
type Home struct {
	base
}

func NewHome(deps Deps) *Home {
	return &Home{base: newBase(deps, RouteHome, "Welcome to MoneyMaven")}
}

func (p *Home) Mount(context.Context) error { return nil }

func (p *Home) Unmount() {}

func (p *Home) Err() string { return "" }

func (p *Home) Render(w io.Writer) error {
	return p.deps.Views.render(w, "home", struct{ Header Header }{p.header()})
}
