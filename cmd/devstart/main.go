package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	Execute()
}

// notifyContext cancels on interrupt so a hanging git command is killed.
func notifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
