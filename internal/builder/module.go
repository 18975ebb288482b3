package builder

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/zerocode/landing/internal/config"
	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/schedule"
	"github.com/zerocode/landing/internal/script"
)

var Module = fx.Module("builder",
	fx.Provide(
		LoadScript,
		NewStoreFromConfig,
	),
)

// LoadScript returns the built-in script, or the script file named by the
// config when there is one.
func LoadScript(cfg *config.Config, log *slog.Logger) (*script.Script, error) {
	if cfg.ScriptPath == "" {
		return script.Default(), nil
	}

	sc, err := script.Load(cfg.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("load builder script: %w", err)
	}

	log.With(logger.Scope("builder")).Info("loaded builder script",
		slog.String("path", cfg.ScriptPath),
		slog.Int("steps", len(sc.Steps)),
		slog.Duration("run", sc.StepsDuration()+sc.RevealDuration()),
	)
	return sc, nil
}

// StoreParams are the dependencies for creating the session store
type StoreParams struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Script   *script.Script
	Observer Observer `optional:"true"`
	Log      *slog.Logger
}

// NewStoreFromConfig creates the session store on the system clock and
// closes every session when the application stops.
func NewStoreFromConfig(p StoreParams) *Store {
	st := NewStore(StoreConfig{
		MaxSessions:      p.Config.Sessions.MaxSessions,
		TTL:              p.Config.Sessions.TTL,
		SubscriberBuffer: p.Config.Sessions.SubscriberBuffer,
	}, p.Script, schedule.System(), p.Observer, p.Log)

	p.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.Log.Info("closing builder sessions", slog.Int("sessions", st.Len()))
			st.Close()
			return nil
		},
	})
	return st
}
