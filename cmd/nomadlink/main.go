// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Goodnessmbakara/nomadlink-contract/api"
	"github.com/Goodnessmbakara/nomadlink-contract/auditdb"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin"
	"github.com/Goodnessmbakara/nomadlink-contract/genesis"
	"github.com/Goodnessmbakara/nomadlink-contract/log"
	"github.com/Goodnessmbakara/nomadlink-contract/metrics"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	version   = "1.0.0"
	gitCommit string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nomadlink",
		Usage:     "Time-locked staking ledger service",
		Copyright: "2025 The NomadLink developers",
		Flags: []cli.Flag{
			apiAddrFlag,
			genesisFlag,
			auditDBFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	st := state.New()
	if err := gene.Build(st); err != nil {
		return errors.Wrap(err, "build genesis state")
	}
	logger.Info("genesis built", "network", gene.Name())

	audit, err := openAuditDB(ctx)
	if err != nil {
		return err
	}
	defer audit.Close()

	vault := builtin.StakeVault.WithState(st)
	vault.SetAuditor(audit)
	ctrl := builtin.NewControl(st)

	return serveAPI(ctx, api.New(vault, ctrl, nil))
}

func initLogger(ctx *cli.Context) {
	var level slog.Level
	switch verbosity := ctx.Int(verbosityFlag.Name); {
	case verbosity <= 0:
		level = slog.LevelError
	case verbosity == 1:
		level = slog.LevelWarn
	case verbosity <= 3:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	output := os.Stderr
	if ctx.Bool(jsonLogsFlag.Name) {
		log.SetDefault(log.NewJSONHandler(output, level))
	} else if isatty.IsTerminal(output.Fd()) {
		log.SetDefault(log.NewTextHandler(output, level))
	} else {
		log.SetDefault(log.NewJSONHandler(output, level))
	}
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer file.Close()
	return genesis.NewCustomNet(file)
}

func openAuditDB(ctx *cli.Context) (*auditdb.AuditDB, error) {
	path := ctx.String(auditDBFlag.Name)
	if path == "" {
		return auditdb.NewMem()
	}
	db, err := auditdb.New(path)
	if err != nil {
		return nil, errors.Wrap(err, "open audit db")
	}
	return db, nil
}

func serveAPI(ctx *cli.Context, handler http.HandlerFunc) error {
	addr := ctx.String(apiAddrFlag.Name)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve API")
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
