package mock

import (
	"context"
	"log"
	"time"
)

// MockIntegration runs an in-process fake bot next to the dashboard.
type MockIntegration struct {
	bot      *BotServer
	addr     string
	interval time.Duration
}

// NewMockIntegration builds a fake bot seeded from the clock that samples the
// real host for CPU and memory.
func NewMockIntegration(addr, password string, interval time.Duration) *MockIntegration {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	gen := NewDataGenerator(time.Now().UnixNano(), GopsutilSampler{})
	return &MockIntegration{
		bot:      NewBotServer(gen, password),
		addr:     addr,
		interval: interval,
	}
}

func (m *MockIntegration) Bot() *BotServer {
	return m.bot
}

// Start launches the simulation and the HTTP listener. Both stop with ctx.
func (m *MockIntegration) Start(ctx context.Context) {
	go m.bot.Simulate(ctx, m.interval)
	go func() {
		if err := m.bot.Run(ctx, m.addr); err != nil {
			log.Printf("Mock bot stopped: %v", err)
		}
	}()
	log.Printf("Mock integration started on %s (step %s)", m.addr, m.interval)
}
