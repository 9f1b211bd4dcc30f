package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-rakis/tinyhttp/app/handlers"
	"github.com/go-rakis/tinyhttp/app/router"
	"github.com/go-rakis/tinyhttp/app/server"
)

type config struct {
	addr      string
	directory string
	logLevel  string
}

func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("tinyhttp", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", "127.0.0.1:4221", "address to listen on")
	fs.StringVar(&cfg.directory, "directory", "", "directory served under /files (disabled when empty)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("level", cfg.logLevel).Msg("invalid log level")
	}
	logger = logger.Level(level)

	if cfg.directory != "" {
		logger.Info().Str("directory", cfg.directory).Msg("serving files")
	}

	r := handlers.Routes(router.New(), cfg.directory)
	srv := server.New(cfg.addr, r, logger)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
