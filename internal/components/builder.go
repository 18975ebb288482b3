package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/script"
)

const (
	StepsPanelID = "builder-steps"
	OutputPaneID = "builder-output"
)

// Builder renders the prompt widget for a session state. The page is fully
// usable without a session: the script attaches one on load.
func Builder(sc *script.Script, st builder.State) g.Node {
	return Section(
		Class("section"),
		ID("builder"),
		g.Attr("data-api", "/api/sessions"),
		Div(
			Class("container container-narrow"),

			Div(
				Class("section-heading reveal-on-scroll"),
				H2(
					g.Text("What do you want to "),
					Span(Class("gradient-text"), g.Text("build")),
					g.Text("?"),
				),
				P(Class("text-muted"), g.Text("Describe your app idea in plain language. Our AI handles the rest.")),
			),

			Div(
				Class("prompt-card glow-box"),
				Textarea(
					ID("builder-prompt"),
					Name("prompt"),
					g.Attr("rows", "4"),
					Placeholder("e.g. A task management app with drag-and-drop boards, user authentication, and real-time collaboration..."),
					g.Text(st.Prompt),
				),
				Div(
					Class("prompt-actions"),
					ExampleButtons(sc),
					Button(
						ID("builder-generate"),
						Type("button"),
						Class("btn btn-primary btn-small"),
						g.If(!st.CanGenerate(), Disabled()),
						Icon("lucide--send size-4", ""),
						g.Text("Generate"),
					),
				),
			),

			StepsPanel(sc, st),
			OutputPane(sc, st),
		),
	)
}

// ExampleButtons renders one shortcut per example label. Each carries the
// prompt it fills in.
func ExampleButtons(sc *script.Script) g.Node {
	return Div(
		Class("examples"),
		ID("examples"),
		g.Group(g.Map(sc.Examples, func(label string) g.Node {
			return Button(
				Type("button"),
				Class("example-chip"),
				g.Attr("data-example", label),
				g.Attr("data-prompt", sc.ExamplePrompt(label)),
				g.Text(label),
			)
		})),
	)
}

// StepsPanel renders the step chips. It is rendered hidden when no step
// should be shown so the stream can swap it in place.
func StepsPanel(sc *script.Script, st builder.State) g.Node {
	chips := make([]g.Node, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		chips = append(chips, StepChip(step, st.StepStatus(i)))
	}

	return Div(
		ID(StepsPanelID),
		Class("steps"),
		g.If(!st.ShowSteps(), g.Attr("hidden")),
		g.Group(chips),
	)
}

func StepChip(step script.Step, status builder.StepStatus) g.Node {
	icon := "lucide--" + step.Icon + " size-4"
	if status == builder.StepActive {
		icon += " animate-pulse"
	}

	return Div(
		Class("step step-"+string(status)),
		g.Attr("data-status", string(status)),
		Icon(icon, ""),
		g.Text(step.Label),
	)
}

// OutputPane renders the revealed code followed by the cursor.
func OutputPane(sc *script.Script, st builder.State) g.Node {
	return Div(
		ID(OutputPaneID),
		Class("output"),
		g.If(!st.ShowOutput(), g.Attr("hidden")),
		Div(
			Class("output-header"),
			Div(
				Class("window-dots"),
				Span(Class("dot dot-red")),
				Span(Class("dot dot-amber")),
				Span(Class("dot dot-green")),
			),
			Span(Class("font-mono text-muted text-xs"), g.Text(sc.Filename)),
		),
		Pre(
			Code(
				Span(ID("builder-code"), g.Text(st.Displayed)),
				Span(Class("cursor"), g.Text("|")),
			),
		),
	)
}
