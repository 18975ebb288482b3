package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/script"
	"github.com/zerocode/landing/internal/tui"
)

type playOptions struct {
	prompt     string
	example    string
	scriptPath string
	speed      float64
	plain      bool
}

func playCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a builder run in the terminal",
		Long: `Play runs the scripted builder animation in the terminal: the steps are
highlighted in turn and the snippet is revealed one character at a time.
Press r to regenerate and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.session()
			if err != nil {
				return err
			}
			defer sess.Close()

			if opts.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.PlayPlain(cmd.Context(), cmd.OutOrStdout(), sess, sess.Generate)
			}

			m := tui.New(sess, false)
			if !sess.Generate() {
				return errors.New("nothing to generate: pass --prompt or --example")
			}

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("play: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Prompt to generate from")
	cmd.Flags().StringVar(&opts.example, "example", "", "Use an example prompt (e.g. \"Task Manager\")")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "YAML file replacing parts of the built-in script")
	cmd.Flags().Float64Var(&opts.speed, "speed", 1, "Playback speed multiplier")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the run as plain text instead of the interactive view")
	cmd.MarkFlagsMutuallyExclusive("prompt", "example")

	return cmd
}

// session builds an idle session holding the requested prompt.
func (o playOptions) session() (*builder.Session, error) {
	if o.speed <= 0 {
		return nil, fmt.Errorf("--speed must be positive, got %v", o.speed)
	}

	sc, err := script.Load(o.scriptPath)
	if err != nil {
		return nil, err
	}
	if o.speed != 1 {
		sc = sc.Scaled(o.speed)
	}

	sess := builder.NewSession("play", sc, builder.Options{})
	switch {
	case o.example != "":
		if _, err := sess.UseExample(o.example); err != nil {
			sess.Close()
			return nil, err
		}
	case strings.TrimSpace(o.prompt) != "":
		sess.SetPrompt(o.prompt)
	default:
		sess.Close()
		return nil, errors.New("pass --prompt or --example")
	}
	return sess, nil
}
