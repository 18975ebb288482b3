package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Hero is the top of the page. Its call-to-action scrolls to the builder.
func Hero() g.Node {
	return Section(
		Class("hero"),
		ID("hero"),

		Div(Class("hero-backdrop")),
		Div(Class("hero-grid")),

		Div(
			Class("hero-content"),

			Div(
				Class("hero-badge fade-up"),
				Span(Class("pulse-dot")),
				Span(Class("font-mono text-muted"), g.Text("Zero-Code AI Builder")),
			),

			H1(
				Class("hero-title fade-up delay-1"),
				g.Text("Describe it. "),
				Span(Class("gradient-text"), g.Text("Build it.")),
				Br(),
				g.Text("Ship it."),
			),

			P(
				Class("hero-lead fade-up delay-2"),
				g.Text("Turn your app ideas into production-ready code instantly. AI generates the UI, database, and logic — you just describe what you want."),
			),

			Div(
				Class("hero-actions fade-up delay-3"),
				A(
					Href("#builder"),
					Class("btn btn-primary glow-box"),
					g.Attr("data-scroll-to", "builder"),
					g.Text("Start Building"),
				),
				A(
					Href("#examples"),
					Class("btn btn-ghost"),
					g.Attr("data-scroll-to", "examples"),
					g.Text("See Examples"),
				),
			),
		),
	)
}
