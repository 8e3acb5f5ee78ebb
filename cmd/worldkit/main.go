package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/config"
	"github.com/lixenwraith/worldkit/game"
)

func main() {
	configPath := flag.String("config", "worldkit.yaml", "configuration file")
	debug := flag.Bool("debug", false, "debug logging")
	world := flag.String("world", "", "default world for the custom-world portal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *world != "" {
		cfg.DefaultWorld = *world
	}

	log, err := setupLogging(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}

	// The terminal must be restored before a panic reaches the user,
	// otherwise the trace lands on a raw alternate screen
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error("panic", zap.Any("recovered", r), zap.Stack("stack"))
			panic(r)
		}
	}()

	g, err := game.New(cfg, screen, log)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}

	runErr := g.Run()
	g.Close()
	screen.Fini()

	if runErr != nil {
		log.Error("game loop failed", zap.Error(runErr))
		fmt.Fprintf(os.Stderr, "worldkit: %v\n", runErr)
		os.Exit(1)
	}
}

// setupLogging writes console-encoded logs to a file; the terminal itself
// belongs to tcell for the whole session
func setupLogging(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"worldkit.log"}
	cfg.ErrorOutputPaths = []string{"worldkit.log"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
