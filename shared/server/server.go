// Package server runs HTTP listeners as oklog/run actors.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/oklog/run"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func configureServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Add listens on addr immediately and registers the server with g. The
// returned listener reports the bound address, useful when addr ends in ":0".
// An empty addr registers nothing.
func Add(g *run.Group, name, addr string, handler http.Handler) (net.Listener, error) {
	if addr == "" {
		return nil, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s listen on %s: %w", name, addr, err)
	}
	srv := configureServer(handler)
	log := logger.Component(name)

	g.Add(func() error {
		log.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", "error", err)
		}
	})
	return ln, nil
}

// AddSignalHandler stops g on SIGINT or SIGTERM.
func AddSignalHandler(g *run.Group) {
	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))
}
