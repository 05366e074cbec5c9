package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"tapdash-server/internal/config"
	"tapdash-server/internal/network"
	"tapdash-server/internal/relay"
	"tapdash-server/internal/server"
	"tapdash-server/internal/version"
	"tapdash-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var configPath, port, codec string
	var debug bool
	flag.StringVar(&configPath, "config", "", "Path to config file (default: ./config.json if present)")
	flag.StringVar(&port, "port", "", "Listen port (overrides server.port)")
	flag.StringVar(&codec, "codec", "", "Default wire codec: json or msgpack")
	flag.BoolVar(&debug, "debug", false, "Enable /debug routes")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if codec != "" {
		cfg.Server.Codec = codec
	}
	if debug {
		cfg.Server.Debug = true
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	logger.Log.Info("Starting Tap Dash relay...")
	logger.Log.Info(version.String())

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Релей
	hub := network.NewBroadcaster(cfg.Server.HubBuffer)
	session := relay.NewSession(hub, relay.Options{
		MaxPlayers: cfg.Relay.MaxPlayers,
		NameLimit:  cfg.Relay.NameLimit,
		InboxSize:  cfg.Relay.InboxSize,
	})
	go session.Run(ctx)

	// 3. Запуск сервера
	srv, err := server.New(cfg.Server, session, hub)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to create server")
	}
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("server error")
	}

	<-session.Done()
	logger.Log.Info("Done.")
}
