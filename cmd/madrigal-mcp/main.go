package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/madrigal/internal/game"
	madmcp "github.com/peterkuimelis/madrigal/internal/mcp"
)

func main() {
	rulesFile := flag.String("rules", "", "path to a rules YAML file (default rules if empty)")
	flag.Parse()

	// stdout carries the MCP protocol; zap's production config logs to stderr.
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rules := game.DefaultRules()
	if *rulesFile != "" {
		rules, err = game.ParseRulesFile(*rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	s := server.NewMCPServer("madrigal", "1.0.0")
	madmcp.NewManager(rules, logger).RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
