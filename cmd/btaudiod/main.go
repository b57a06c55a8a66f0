// btaudiod serves A2DP codec negotiation and LE audio configuration matching over HTTP.
//
// Configuration comes from built-in defaults, the YAML file named by --config (or
// BTAUDIO_CONFIG), BTAUDIO_* environment variables and finally command line flags.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/ugparu/btaudio/a2dp"
	"github.com/ugparu/btaudio/config"
	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/leaudio/catalog"
	"github.com/ugparu/btaudio/metrics"
	"github.com/ugparu/btaudio/server"
	"github.com/ugparu/btaudio/utils/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("btaudiod", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to the YAML configuration file")
	addr := flagSet.String("http-addr", "", "HTTP listen address")
	enablePprof := flagSet.Bool("pprof", false, "expose /debug/pprof")
	logLevel := flagSet.String("log-level", "", "log level (trace, debug, info, warning, error)")
	logFormat := flagSet.String("log-format", "", "log format (text or json)")
	codecs := flagSet.StringSlice("codecs", nil, "A2DP codecs in priority order (aac, sbc)")
	location := flagSet.String("codec-location", "", "LE audio codec location (host, adsp, controller)")
	configurations := flagSet.String("catalog-configurations", "", "LE audio configurations file")
	scenarios := flagSet.String("catalog-scenarios", "", "LE audio scenarios file")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return err
	}

	changed := flagSet.Changed
	if changed("http-addr") {
		cfg.HTTPAddr = *addr
	}
	if changed("pprof") {
		cfg.EnablePprof = *enablePprof
	}
	if changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = *logFormat
	}
	if changed("codecs") {
		cfg.Codecs = *codecs
	}
	if changed("codec-location") {
		cfg.CodecLocation = *location
	}
	if changed("catalog-configurations") {
		cfg.CatalogConfigurations = *configurations
	}
	if changed("catalog-scenarios") {
		cfg.CatalogScenarios = *scenarios
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	logger.Init(lvl, cfg.LogFormat)

	factory, err := a2dp.NewFactoryFromNames(cfg.FactoryName, cfg.Codecs)
	if err != nil {
		return err
	}
	loc, _ := cfg.Location()
	files := catalog.NewFileProvider(cfg.CatalogConfigurations, cfg.CatalogScenarios, loc)
	if _, err = files.Load(); err != nil {
		return err
	}
	provider := leaudio.NewProvider(files, nil)

	srv := server.New(server.Options{Addr: cfg.HTTPAddr, EnablePprof: cfg.EnablePprof}, factory, provider, metrics.New())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logrus.Infof("Received signal %v, shutting down", sig)
		srv.Close()
		<-errCh
	case err = <-errCh:
		srv.Close()
		if err != nil {
			return err
		}
	}
	logrus.Info("Server shutdown complete")
	return nil
}
