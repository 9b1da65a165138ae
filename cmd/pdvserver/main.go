package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/openpdv/pdvserver/config"
	"github.com/openpdv/pdvserver/internal/adminapi"
	"github.com/openpdv/pdvserver/internal/app"
	"github.com/openpdv/pdvserver/internal/webserver"
)

var (
	cfile   = flag.String("c", "pdvserver.yml", "config file")
	initdb  = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("pdvserver", version)
		return
	}

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server := webserver.Init(application)
	adminapi.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("webserver error: %v", err)
		}
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
	}
}
