// Command ttsbot runs the Discord text-to-speech bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/reiyw/ttsbot/internal/config"
	discordbot "github.com/reiyw/ttsbot/internal/discord"
	"github.com/reiyw/ttsbot/internal/discord/commands"
	"github.com/reiyw/ttsbot/internal/health"
	"github.com/reiyw/ttsbot/internal/langdetect"
	"github.com/reiyw/ttsbot/internal/observe"
	"github.com/reiyw/ttsbot/internal/optionstore"
	"github.com/reiyw/ttsbot/internal/voice"
	"github.com/reiyw/ttsbot/pkg/tts"
	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

// shutdownTimeout bounds the graceful teardown after the signal context is
// cancelled.
const shutdownTimeout = 15 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "ttsbot: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "ttsbot: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	slog.Info("ttsbot starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "ttsbot"})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Option store ──────────────────────────────────────────────────────────
	store, pool, err := optionstore.Connect(ctx, cfg.Database.PostgresDSN)
	if err != nil {
		slog.Error("failed to connect option store", "err", err)
		return 1
	}
	defer pool.Close()
	slog.Info("option store loaded", "users", store.Len())

	// ── Synthesis engines ─────────────────────────────────────────────────────
	var vtClient *voicetext.Client
	if cfg.TTS.VoiceTextAPIKey != "" {
		vtClient, err = voicetext.NewClient(cfg.TTS.VoiceTextAPIKey)
		if err != nil {
			slog.Error("failed to create voicetext client", "err", err)
			return 1
		}
		slog.Info("engine configured", "engine", tts.EngineVoiceText)
	}
	var vvClient *voicevox.Client
	if cfg.TTS.VoiceVoxAPIKey != "" {
		vvClient, err = voicevox.NewClient(cfg.TTS.VoiceVoxAPIKey)
		if err != nil {
			slog.Error("failed to create voicevox client", "err", err)
			return 1
		}
		slog.Info("engine configured", "engine", tts.EngineVoiceVox)
	}
	synth := tts.NewClient(vtClient, vvClient)

	// ── Discord bot ───────────────────────────────────────────────────────────
	player := voice.NewPlayer(cfg.Playback.Volume)

	bot, err := discordbot.New(ctx, discordbot.Config{
		Token:         cfg.Discord.Token,
		CommandPrefix: cfg.Discord.CommandPrefix,
	}, discordbot.Deps{
		Store:    store,
		TTS:      synth,
		Detector: langdetect.New(),
		Player:   player,
		Metrics:  metrics,
	})
	if err != nil {
		slog.Error("failed to create Discord bot", "err", err)
		return 1
	}

	commands.RegisterTTS(bot.Router(), commands.TTSDeps{
		Store:   store,
		Metrics: metrics,
	})
	commands.RegisterVoice(bot.Router(), commands.VoiceDeps{
		Tracker: bot.Tracker(),
		Player:  player,
		Metrics: metrics,
	})
	slog.Debug("commands registered", "commands", bot.Router().Commands())

	// ── Run ───────────────────────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(gctx)
	})

	var httpServer *http.Server
	if cfg.Server.ListenAddr != "" {
		mux := http.NewServeMux()
		health.New(
			health.PingChecker("database", pool.Ping),
			health.PingChecker("discord", bot.Ready),
		).Register(mux)
		mux.Handle("/metrics", promhttp.Handler())

		httpServer = &http.Server{Addr: cfg.Server.ListenAddr, Handler: mux}
		g.Go(func() error {
			slog.Info("http server listening", "addr", cfg.Server.ListenAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	slog.Info("ttsbot ready — press Ctrl+C to shut down")

	err = g.Wait()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	slog.Info("shutting down…")

	if closeErr := bot.Close(); closeErr != nil {
		slog.Warn("discord bot close error", "err", closeErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}
