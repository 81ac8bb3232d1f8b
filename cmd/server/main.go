package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/akoval/minesweep/internal/app"
	"github.com/akoval/minesweep/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func newLogger() *logrus.Logger {
	log := logrus.New()

	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.LogFilePath(),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.WithError(err).Warn("unable to set up log rotation")
	} else {
		log.AddHook(hook)
	}

	return log
}

func main() {
	log := newLogger()

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	if err := app.New(log, migrations).Start(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
