package cli

import (
	"context"
	"io/fs"
	"log/slog"
	"net"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/config"
	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/metrics"
	"github.com/zerocode/landing/internal/server"
)

func serveCmd(static fs.FS) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and the builder API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()

			opts := []fx.Option{newApp(static)}
			if open {
				opts = append(opts, fx.Invoke(openBrowser))
			}

			app := fx.New(opts...)
			app.Run()
			return app.Err()
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the landing page in a browser once the server is up")
	return cmd
}

// openBrowser opens the landing page after the server has started.
func openBrowser(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			url := localURL(cfg.Addr())
			go func() {
				if err := browser.OpenURL(url); err != nil {
					log.Warn("failed to open browser", slog.String("url", url), logger.Error(err))
				}
			}()
			return nil
		},
	})
}

// localURL turns a listen address into a URL a local browser can open.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func newApp(static fs.FS) fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		fx.Provide(func() fs.FS { return static }),

		logger.Module,
		config.Module,
		metrics.Module,
		builder.Module,
		server.Module,
	)
}
