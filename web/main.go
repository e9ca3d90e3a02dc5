package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pgadula/raytracing/pkg/log"
	"github.com/pgadula/raytracing/web/server"
	"github.com/urfave/cli"
)

var logger = log.New("web")

func serve(ctx *cli.Context) error {
	verbosity := 0
	if ctx.Bool("v") {
		verbosity = 1
	}
	if ctx.Bool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.LevelFromVerbosity(verbosity))

	port := ctx.Int("port")
	webServer := server.NewServer(port, ctx.String("scenes"), ctx.String("static"))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		logger.Notice("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}()

	logger.Noticef("visit http://localhost:%d to start rendering", port)
	return webServer.Start()
}

func main() {
	app := cli.NewApp()
	app.Name = "raytracing-web"
	app.Usage = "serve progressive renders to the browser"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes",
			Value: "scenes",
			Usage: "directory searched for JSON scene files",
		},
		cli.StringFlag{
			Name:  "static",
			Value: "static",
			Usage: "directory holding the browser client",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
