package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/script"
)

// LandingPage is the whole page: hero, builder, features and footer.
func LandingPage(sc *script.Script, st builder.State) g.Node {
	return Layout(
		PageConfig{},
		Div(
			Class("page"),
			Main(
				Hero(),
				Builder(sc, st),
				Features(),
			),
			PageFooter(),
		),
	)
}
