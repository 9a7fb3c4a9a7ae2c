package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tvworks/repairdesk/config"
	"github.com/tvworks/repairdesk/internal/adminapi"
	"github.com/tvworks/repairdesk/internal/app"
	"github.com/tvworks/repairdesk/internal/webserver"
)

var (
	h       = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	initcfg = flag.Bool("initcfg", false, "write default config file and exit")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	if *initcfg {
		target := *conffile
		if target == "" {
			target = "repairdesk.yml"
		}
		if err := config.WriteDefault(target); err != nil {
			fmt.Fprintf(os.Stderr, "write config failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("default config written to", target)
		return
	}

	cfg := config.LoadConfig(*conffile)

	a := app.NewApplication(cfg)
	a.Init(cfg)
	defer a.Release()

	webserver.Init(cfg)
	adminapi.Register(adminapi.Deps{
		Records: a.Records(),
		Lookups: a.Lookups(),
		Blobs:   a.Blobs(),
		Forward: a.Forwarder(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Listen()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return webserver.Echo().Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Info("server stopped", zap.Error(err))
	}
}
