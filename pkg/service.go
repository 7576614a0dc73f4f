package pkg

import (
	"context"
	"fmt"
	"sync"

	"github.com/ManouchehrRasoulli/fscommander/pkg/command"
	"github.com/ManouchehrRasoulli/fscommander/pkg/commandfile"
	"github.com/ManouchehrRasoulli/fscommander/pkg/logger"
	"github.com/ManouchehrRasoulli/fscommander/pkg/watcher"
	"github.com/spf13/afero"
)

// Service watches the command file and dispatches its commands.
type Service struct {
	cfg        *Config
	logger     *logger.ColorLogger
	handler    *commandfile.Handler
	dispatcher *command.Dispatcher
	w          *watcher.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewService validates cfg and prepares the command file handler. The
// command file must exist.
func NewService(cfg *Config, logger *logger.ColorLogger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, _ := commandfile.ParseMode(cfg.Mode)
	grammar, _ := command.ParseGrammar(cfg.Grammar)

	var target afero.Fs = afero.NewOsFs()
	if cfg.Root != "" {
		rfs, err := command.NewRootFs(target, cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %s: %w", cfg.Root, err)
		}
		logger.Printf("service :: command paths resolve inside %s\n", rfs.Root())
		target = rfs
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:    cfg,
		logger: logger,
		dispatcher: command.NewDispatcher(target, command.DispatcherOptions{
			Grammar:       grammar,
			DedupeAppends: cfg.DedupeAppends,
		}, logger),
		ctx:    ctx,
		cancel: cancel,
	}

	h, err := commandfile.NewHandler(afero.NewOsFs(), cfg.File, commandfile.Options{
		Mode:         mode,
		SkipExisting: cfg.SkipExisting,
	}, logger, s.dispatch)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open command file %s: %w", cfg.File, err)
	}
	s.handler = h

	return s, nil
}

func (s *Service) dispatch(lines []string) {
	s.dispatcher.DispatchAll(s.ctx, lines)
}

// Start begins watching the command file.
func (s *Service) Start() error {
	w, err := watcher.NewWatcher(s.cfg.File,
		watcher.WithBufferSize(s.cfg.BufferSize),
		watcher.WithCallbackFunction(s.handler.EventHook))
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.cfg.File, err)
	}
	s.w = w

	s.logger.Infof("service :: watching %s, mode %s, grammar %s", w.Path(), s.handler.Mode(), s.dispatcher.Grammar())
	return nil
}

// Run starts the service and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Close()

	<-ctx.Done()
	s.logger.Printf("service :: shutting down, %v\n", ctx.Err())
	return nil
}

// Close drops pending dispatches and stops the watcher. It is safe to call
// more than once.
func (s *Service) Close() {
	s.once.Do(func() {
		s.cancel()
		if s.w != nil {
			s.w.Close()
		}
	})
}
