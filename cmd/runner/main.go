package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"tapdash-server/internal/agent"
	"tapdash-server/internal/config"
	"tapdash-server/internal/engine"
	"tapdash-server/internal/infrastructure/storage"
	"tapdash-server/internal/runner"
	"tapdash-server/internal/version"
	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"
	"tapdash-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var (
		configPath string
		seed       int64
		replayPath string
		relayURL   string
		username   string
		codecName  string
		ticks      int
		realtime   bool
		noRecord   bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Int64Var(&seed, "seed", 0, "Game seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .tdrp recording to simulate")
	flag.StringVar(&relayURL, "relay", "", "Relay WebSocket URL, e.g. ws://localhost:3000/ws")
	flag.StringVar(&username, "username", "", "Name shown on the relay")
	flag.StringVar(&codecName, "codec", "json", "Relay codec: json or msgpack")
	flag.IntVar(&ticks, "ticks", 0, "Number of ticks to run (overrides runner.ticks)")
	flag.BoolVar(&realtime, "realtime", false, "Run at game.tick_rate instead of as fast as possible")
	flag.BoolVar(&noRecord, "no-record", false, "Do not save a recording")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	logger.Log.Info(version.String())

	store := storage.NewReplayService(cfg.Game.RecordDir)

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		rec, err := store.Load(replayPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to load recording")
		}
		s := engine.Replay(rec)
		entry := logger.Log.WithFields(logrus.Fields{
			"tick":       s.CurrentTick(),
			"score":      s.Score(),
			"high_score": s.HighScore(),
			"recorded":   rec.FinalScore,
		})
		if s.Score() != rec.FinalScore {
			entry.Fatal("replay diverged from recording")
		}
		entry.Info("replay matches recording")
		return
	}

	if seed == 0 {
		seed = cfg.Game.Seed
	}
	gameCfg := engine.Config{Seed: utils.NewSeed(seed), Tuning: cfg.Game.Tuning}
	logger.Log.Infof("🎲 Seed: %d", gameCfg.Seed)

	opts := runner.Options{
		Ticks:       cfg.Runner.Ticks,
		Restart:     cfg.Runner.Restart,
		UpdateEvery: cfg.Runner.UpdateEvery,
	}
	if ticks > 0 {
		opts.Ticks = ticks
	}
	if realtime {
		opts.TickRate = cfg.Game.TickRate
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pilot := agent.NewAutopilot(cfg.Agent.JumpLead, cfg.Agent.Horizon, cfg.Agent.Dodge)
	r := runner.New(engine.NewSession(gameCfg), pilot, opts)
	if !noRecord {
		r.Store = store
	}

	if relayURL == "" {
		relayURL = cfg.Runner.RelayURL
	}
	if username == "" {
		username = cfg.Runner.Username
	}
	if relayURL != "" {
		codec, err := api.CodecByName(codecName)
		if err != nil {
			logger.Log.WithError(err).Fatal("bad codec")
		}
		client, err := runner.DialRelay(ctx, relayURL, username, codec)
		if err != nil {
			logger.Log.WithError(err).Fatal("failed to connect to relay")
		}
		defer client.Close()
		r.Relay = client
	}

	res, err := r.Run(ctx)
	fields := logrus.Fields{
		"ticks":      res.Ticks,
		"score":      res.Score,
		"high_score": res.HighScore,
		"phase":      res.Phase,
		"recording":  res.Recording,
	}
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("run failed")
		return
	}
	logger.Log.WithFields(fields).Info("run finished")
}
