package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"studylog/app/internal/app/bootstrap"
	"studylog/app/internal/config"
	applog "studylog/app/internal/platform/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	contentDir := flag.String("content", cfg.ContentDir, "directory of numeric-prefixed topic files")
	checklistPath := flag.String("checklist", cfg.ChecklistPath, "optional checklist file to seed the ledger from")
	flag.Parse()

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	app, err := bootstrap.Build(ctx, bootstrap.Dependencies{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return eris.Wrap(err, "building application")
	}
	defer func() {
		if closeErr := app.Cleanup(); closeErr != nil {
			logger.WithError(closeErr).Error("closing database")
		}
	}()

	added, err := app.Importer.ImportDir(ctx, *contentDir)
	if err != nil {
		return eris.Wrapf(err, "importing content directory: %s", *contentDir)
	}

	logger.WithFields(logrus.Fields{
		"dir":   *contentDir,
		"added": added,
	}).Info("content import complete")

	if *checklistPath == "" {
		return nil
	}

	applied, err := app.Importer.ImportChecklist(ctx, *checklistPath)
	if err != nil {
		return eris.Wrapf(err, "importing checklist: %s", *checklistPath)
	}

	logger.WithFields(logrus.Fields{
		"checklist": *checklistPath,
		"applied":   applied,
	}).Info("checklist import complete")

	return nil
}
