// dungeonserver starts the map-generation TCP service alongside an SSH
// admin console. Build:
//
//	go build -o dungeonserver ./cmd/dungeonserver
//
// Usage:
//
//	./dungeonserver [--addr :5000] [--admin-addr :2223] [--key admin_host_key]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gossh "github.com/gliderlabs/ssh"

	"dungeonforge/internal/adminssh"
	"dungeonforge/internal/mapservice"
	"dungeonforge/internal/wireproto"
)

func main() {
	addr := flag.String("addr", envOr("DUNGEON_ADDR", fmt.Sprintf(":%d", wireproto.DefaultPort)), "map service TCP listen address")
	adminAddr := flag.String("admin-addr", envOr("DUNGEON_SSH_ADDR", ":2223"), "admin console SSH listen address")
	keyFile := flag.String("key", envOr("DUNGEON_HOST_KEY", "admin_host_key"), "path to the admin console's PEM-encoded host key (auto-generated if absent)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	signer, err := adminssh.LoadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("failed to prepare admin console host key", "error", err)
		os.Exit(1)
	}

	console := adminssh.NewConsole(logger)
	adminSrv := &gossh.Server{
		Addr:        *adminAddr,
		Handler:     console.Handle,
		HostSigners: []gossh.Signer{signer},
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("admin console listening", "addr", *adminAddr)
		errCh <- adminSrv.ListenAndServe()
	}()

	go func() {
		errCh <- mapservice.NewServer(logger).ListenAndServe(*addr)
	}()

	if err := <-errCh; err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// envOr returns the named environment variable's value, or def if unset.
// Explicit flags still win, since flag.Parse runs after these defaults are
// computed and overrides them when the user passes the flag.
func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
