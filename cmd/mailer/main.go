package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"tasktracker/internal/app/consumers"
	"tasktracker/internal/app/deps"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	shutdownConsumers := consumers.InitConsumers(deps)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	deps.Logger.Info(context.Background(), "Mailer is shutting down.")
	shutdownConsumers()
	shutdownDeps()
}
