package main

import (
	"context"
	"log"
	"os"

	"github.com/elducche/mddcli/internal/buildinfo"
	"github.com/elducche/mddcli/internal/client/cli"
	"github.com/elducche/mddcli/internal/client/config"
	"github.com/elducche/mddcli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
