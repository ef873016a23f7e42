package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tinytelemetry/memberdesk/internal/recordsource"
	"github.com/tinytelemetry/memberdesk/internal/roster"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var sourceURL string
	var headless bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/memberdesk/config.yml)")
	flag.StringVar(&sourceURL, "url", "", "override the member feed URL")
	flag.BoolVar(&headless, "headless", false, "serve the HTTP API only, without the TUI")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("memberdesk - Member Admin Console\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if sourceURL != "" {
		cfg.SourceURL = sourceURL
	}
	if headless {
		cfg.APIEnabled = true
	}

	closeLog := configureRuntimeLogger(cfg.LogFile)

	engine := roster.NewEngine()
	source := recordsource.NewHTTPSource(cfg.SourceURL, nil)

	if headless {
		err = runHeadless(cfg, engine, source)
	} else {
		err = runTUI(cfg, engine, source)
	}
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
