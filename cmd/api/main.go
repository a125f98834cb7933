package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/order-board/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := api.Run(ctx); err != nil {
		log.Fatalf("order board API failed: %v", err)
	}
}
