package main

import (
	"context"

	"github.com/theryangeary/gl/internal/client/cli"
	"github.com/theryangeary/gl/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
