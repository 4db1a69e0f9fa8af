package main

import (
	"context"
	"log"
	"os"

	"github.com/elducche/mddcli/internal/devserver"
	"github.com/elducche/mddcli/internal/logging"
)

func main() {
	cfg, err := devserver.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.BackendZap, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	if err := devserver.NewApp(cfg, logger).Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
