// Command measured serves the measurement and upload API.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tvoss/image-measure-go/server"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	dataDir := flag.String("data", "data", "directory for sessions and uploads")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	store, err := server.NewSessionStore(filepath.Join(*dataDir, "sessions.json"))
	if err != nil {
		logger.Error("session store init failed", "error", err)
		os.Exit(1)
	}
	srv, err := server.NewServer(logger, store, filepath.Join(*dataDir, "uploads"))
	if err != nil {
		logger.Error("server init failed", "error", err)
		os.Exit(1)
	}

	logger.Info("measurement server listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
