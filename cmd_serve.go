package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rehiy/web-radio/config"
	"github.com/rehiy/web-radio/router"
	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

type serveCmd struct {
	config.Server `embed:""`
}

func (s *serveCmd) Run(g *config.Globals) error {
	registry := transport.NewRegistry()
	ds := service.InitDeviceService(service.Options{
		Transport: transport.NewSerial(),
		Ports:     registry,
		Baud:      g.Baud,
		Settle:    g.Settle,
	})
	defer ds.Close()

	// 启动时自动连接
	if s.Device != "" {
		if err := ds.Open(s.Device, g.Baud); err != nil {
			log.Printf("Auto connect %s failed: %v", s.Device, err)
		}
	}

	srv := &http.Server{
		Addr:    s.Addr(),
		Handler: router.Apply(router.Options{Device: ds, Registry: registry, Webview: s.Webview}),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-sigChan:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
