package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ynabel/pkg/config"
	"github.com/yurifrl/ynabel/pkg/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "ynabel",
	})

	var (
		port    = flag.String("port", "3000", "Server port")
		cfgFile = flag.String("config", "", "Config file (default is config.yaml)")
	)
	flag.Parse()

	cfg, err := config.Build(*cfgFile, nil)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	srv := server.New(cfg, logger)
	addr := fmt.Sprintf("0.0.0.0:%s", *port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
