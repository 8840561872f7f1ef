// Package nats runs the embedded JetStream server that backs the model
// library. The server never listens on a port; clients connect in-process.
package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/txcompanion/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("nats")

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts a JetStream-enabled server storing its files in
// dataDir.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	log.Debug("starting embedded server, store dir %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	log.Debug("server ready")
	return ns, nil
}

// ConnectInProcess opens a client connection that talks to ns directly.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("txcompanion"))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats in-process: %w", err)
	}
	return conn, nil
}

// Embedded bundles the server, its client connection and the model stream.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
	Stream jetstream.Stream
}

// Open starts the server in dataDir, connects to it and ensures the model
// stream exists. Close releases everything.
func Open(ctx context.Context, dataDir string) (*Embedded, error) {
	ns, err := StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, err
	}
	e := &Embedded{Server: ns}

	if e.Conn, err = ConnectInProcess(ns); err != nil {
		e.Close()
		return nil, err
	}
	if e.JS, err = jetstream.New(e.Conn); err != nil {
		e.Close()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	if e.Stream, err = SetupStream(ctx, e.JS); err != nil {
		e.Close()
		return nil, fmt.Errorf("setting up stream: %w", err)
	}
	return e, nil
}

// Close drains the connection and shuts the server down, bounded by
// timeouts so a wedged server never hangs the CLI.
func (e *Embedded) Close() error {
	if e.Conn != nil {
		drained := make(chan error, 1)
		go func() { drained <- e.Conn.Drain() }()

		select {
		case err := <-drained:
			if err != nil {
				log.Warn("drain failed, closing: %v", err)
				e.Conn.Close()
			}
		case <-time.After(drainTimeout):
			log.Warn("drain timed out after %s, closing", drainTimeout)
			e.Conn.Close()
		}
	}

	if e.Server == nil {
		return nil
	}
	e.Server.Shutdown()

	stopped := make(chan struct{})
	go func() {
		e.Server.WaitForShutdown()
		close(stopped)
	}()
	select {
	case <-stopped:
		log.Debug("server shut down")
		return nil
	case <-time.After(shutdownTimeout):
		return errors.New("nats server shutdown timed out")
	}
}
