package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-to-scan/internal/config"
	"github.com/ironsheep/image-to-scan/internal/ocr"
	"github.com/ironsheep/image-to-scan/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""

	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-to-scan-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			if ocr.Available() {
				fmt.Printf("  Tesseract:  %s\n", ocr.Version())
			}
			return
		case "--help", "-h", "help":
			fmt.Println("image-to-scan-mcp - MCP server for document scanning")
			fmt.Println()
			fmt.Println("Usage: image-to-scan-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --config FILE    Load scan settings from a YAML file")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=DEBUG    Enable debug logging\n", config.EnvLogLevel)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		case "--config":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a file argument")
				os.Exit(2)
			}
			configPath = os.Args[2]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.ScanOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to stderr (stdout is for MCP protocol)
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := config.NewLogger(os.Stderr, level)
	logger.Debug("image-to-scan MCP server", "version", Version, "built", BuildTime, "commit", GitCommit, "ocr", ocr.Available())

	srv := server.New(opts, logger)
	srv.SetVersion(Version)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
