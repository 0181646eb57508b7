package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"path-tracking/internal/log"
	"path-tracking/path_track"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code. Logs are flushed
// before it returns.
func run(args []string) int {
	fs := flag.NewFlagSet("pathtrack", flag.ContinueOnError)
	var configPath string
	var liveAddr string
	var outputAddr string
	var controllerType string
	var mode string
	fs.StringVar(&configPath, "config", "config.json", "Path to JSON config.")
	fs.StringVar(&liveAddr, "live-addr", "", "Override live UDP listen addr (host:port).")
	fs.StringVar(&outputAddr, "output-addr", "", "Override output UDP addr (host:port).")
	fs.StringVar(&controllerType, "controller", "", "Force controller type (pure_pursuit, stanley, hybrid).")
	fs.StringVar(&mode, "mode", "", "Force hybrid mode (switching, blending, adaptive).")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := path_track.LoadConfig(configPath)
	if err != nil {
		log.Init("info")
		defer func() { _ = log.Sync() }()
		log.Error("load config", "path", configPath, "err", err)
		return 1
	}
	log.Init(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	if liveAddr != "" {
		cfg.Live.UDPAddr = liveAddr
	}
	if outputAddr != "" {
		cfg.Output.UDPAddr = outputAddr
	}
	if controllerType != "" {
		cfg.Controller.Type = controllerType
	}
	if mode != "" {
		m, err := path_track.ParseMode(mode)
		if err != nil {
			log.Error("invalid mode override", "mode", mode, "err", err)
			return 1
		}
		cfg.Controller.Hybrid.Mode = m
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := path_track.RunLive(ctx, cfg); err != nil {
		log.Error("control loop failed", "err", err)
		return 1
	}
	return 0
}
