package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/todos/internal/adapters/session/memory"
	"github.com/bnema/todos/internal/application"
	"github.com/bnema/todos/internal/config"
	"github.com/bnema/todos/internal/logger"
	"github.com/bnema/todos/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg      config.Config
	viper    *viper.Viper
	log      *logger.Logger
	lists    *application.Service
	store    *memory.Store
	sessions *application.SessionService
}

// bindFunc lets a command attach its flags to config keys before loading.
type bindFunc func(v *viper.Viper) error

func wireApp(opts *rootOptions, logOutput io.Writer, bind bindFunc) (*app, error) {
	v := viper.New()
	if bind != nil {
		if err := bind(v); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return nil, err
	}

	var serviceOpts []application.Option
	if cfg.Lists.RejectSameNameRename {
		serviceOpts = append(serviceOpts, application.WithSameNameRenameRejected())
	}

	clock := ports.SystemClock{}
	store := memory.NewStore(cfg.Session.IdleTTL, clock)

	return &app{
		cfg:      cfg,
		viper:    v,
		log:      logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, logOutput),
		lists:    application.NewService(serviceOpts...),
		store:    store,
		sessions: application.NewSessionService(store, clock),
	}, nil
}
