package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func PageFooter() g.Node {
	return Footer(
		Class("page-footer"),
		P(Class("font-mono text-muted"), g.Text("Built with AI • Zero-Code App Builder")),
	)
}
