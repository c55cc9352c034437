package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heathj/xmltree/internal/api"
	"github.com/heathj/xmltree/internal/config"
	"github.com/heathj/xmltree/parser"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	strict := flag.Bool("strict", cfg.Strict, "stop at the first malformed construct")
	keepQuotes := flag.Bool("keep-quotes", cfg.KeepQuotes, "keep double quotes in attribute values")
	serve := flag.Bool("serve", false, "run the HTTP server instead of parsing a file")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for -serve")
	flag.Parse()
	cfg.Strict, cfg.KeepQuotes = *strict, *keepQuotes

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}
	log := cfg.Logger()

	if *serve {
		if err := runServer(cfg, log); err != nil {
			log.WithError(err).Fatal("server error")
		}
		return
	}

	if err := printTree(cfg, log, flag.Arg(0), os.Stdout); err != nil {
		log.WithError(err).Fatal("parse failed")
	}
}

func printTree(cfg config.Config, log logrus.FieldLogger, path string, out io.Writer) error {
	in := io.Reader(os.Stdin)
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "open file")
		}
		defer f.Close()
		in = f
	}

	var opts []parser.Option
	if cfg.Strict {
		opts = append(opts, parser.Strict())
	}
	if cfg.KeepQuotes {
		opts = append(opts, parser.KeepQuotes())
	}

	doc, err := parser.Parse(in, opts...)
	if doc != nil {
		for _, d := range doc.Diagnostics {
			log.WithFields(logrus.Fields{"file": path, "kind": d.Kind.String()}).Warn(d.Error())
		}
	}
	if err != nil {
		return err
	}
	return doc.Fprint(out, parser.RootIndex)
}

func runServer(cfg config.Config, log *logrus.Logger) error {
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewServer(log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", cfg.Addr).Info("starting xmltree")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
