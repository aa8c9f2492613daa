package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielpatrickdp/tancalc/internal/config"
	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/remote"
)

// #region main
func main() {
	configPath := flag.String("config", "", "path to YAML config")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	var rec remote.Recorder
	if cfg.History {
		store, err := history.NewStore(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()
		rec = store
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.ListenAddr, err)
	}

	gs := remote.NewGRPCServer(remote.NewServer(cfg.Evaluator(), cfg.Method, rec))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("shutting down")
		gs.GracefulStop()
	}()

	log.Printf("tand listening on %s (method=%s, history=%v)", lis.Addr(), cfg.Method, cfg.History)
	if err := gs.Serve(lis); err != nil {
		log.Printf("serve: %v", err)
	}
}

// #endregion main
