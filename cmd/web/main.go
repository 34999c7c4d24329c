package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/madrigal/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	rulesFile := flag.String("rules", "", "path to a rules YAML file (default rules if empty)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv, err := web.NewServer(*rulesFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("madrigal web gateway listening", zap.Int("port", *port))
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
