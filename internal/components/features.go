package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type Feature struct {
	Icon        string
	Title       string
	Description string
}

var features = []Feature{
	{"lucide--zap", "Instant Generation", "From idea to working app in seconds, not weeks."},
	{"lucide--layers", "Full-Stack Output", "UI, API, database schema — all generated together."},
	{"lucide--shield", "Production Ready", "Auth, validation, and security baked in from day one."},
	{"lucide--globe", "One-Click Deploy", "Ship your app to the world with a single click."},
	{"lucide--cpu", "AI-Powered Logic", "Smart business logic that adapts to your needs."},
	{"lucide--git-branch", "Iterate Freely", "Refine with natural language — no code required."},
}

// FeatureList returns the features shown in the grid.
func FeatureList() []Feature {
	return append([]Feature(nil), features...)
}

func Features() g.Node {
	i := 0
	return Section(
		Class("section section-bordered"),
		ID("features"),
		Div(
			Class("container"),

			Div(
				Class("section-heading reveal-on-scroll"),
				H2(
					g.Text("Everything you need to "),
					Span(Class("gradient-text"), g.Text("ship fast")),
				),
				P(Class("text-muted"), g.Text("A complete platform that turns your vision into reality.")),
			),

			Div(
				Class("feature-grid"),
				g.Group(g.Map(features, func(f Feature) g.Node {
					delay := fmt.Sprintf("transition-delay: %dms", i*80)
					i++
					return Div(
						Class("feature-card reveal-on-scroll"),
						g.Attr("style", delay),
						IconBadge(f.Icon),
						H3(g.Text(f.Title)),
						P(Class("text-muted"), g.Text(f.Description)),
					)
				})),
			),
		),
	)
}
