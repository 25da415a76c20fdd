// Package service lets the serve command install and run as a native OS
// service (systemd, launchd, Windows service) via kardianos/service,
// instead of only running attached to a terminal.
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	kservice "github.com/kardianos/service"

	"doctranslate/pkg/logger"
)

// Config names the installed service.
type Config struct {
	Name        string
	DisplayName string
	Description string
}

// program adapts an *http.Server's lifecycle to kardianos/service's
// Start/Stop contract: Start must return immediately, so the listener
// runs in its own goroutine, and Stop drives the same graceful shutdown
// a plain foreground run would use.
type program struct {
	srv *http.Server
}

func (p *program) Start(s kservice.Service) error {
	go func() {
		if err := p.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("service listener stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

func (p *program) Stop(s kservice.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return p.srv.Shutdown(ctx)
}

// New builds a kardianos/service.Service wrapping srv.
func New(cfg Config, srv *http.Server) (kservice.Service, error) {
	svcConfig := &kservice.Config{
		Name:        cfg.Name,
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
	}
	s, err := kservice.New(&program{srv: srv}, svcConfig)
	if err != nil {
		return nil, fmt.Errorf("building service: %w", err)
	}
	return s, nil
}
