package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/mock"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	addr := flag.String("addr", "127.0.0.1:2609", "Listen address of the mock bot")
	password := flag.String("password", "password", "Password required by /api/config")
	step := flag.Duration("step", 2*time.Second, "How often a simulated command runs")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot := mock.NewBotServer(mock.NewDataGenerator(*seed, mock.GopsutilSampler{}), *password)
	go bot.Simulate(ctx, *step)

	slog.Info("Mock bot starting", "addr", *addr, "step", *step)
	if err := bot.Run(ctx, *addr); err != nil {
		slog.Error("Mock bot error", "error", err)
		os.Exit(1)
	}
}
