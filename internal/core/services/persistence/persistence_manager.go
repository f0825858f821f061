package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
)

const flushTimeout = 5 * time.Second

// PersistenceManager handles background batch writing of samples to storage.
type PersistenceManager struct {
	storage     ports.Storage
	persistChan chan domain.Sample
	batchSize   int
	interval    time.Duration
	enabled     bool
	mu          sync.RWMutex
	done        chan struct{}
}

// NewPersistenceManager creates a new manager.
func NewPersistenceManager(storage ports.Storage, bufferSize int) *PersistenceManager {
	return &PersistenceManager{
		storage:     storage,
		persistChan: make(chan domain.Sample, bufferSize),
		batchSize:   100,
		interval:    5 * time.Second,
		enabled:     true, // Enabled by default
		done:        make(chan struct{}),
	}
}

// Persist queues a sample if enabled. It never blocks the poller: when the
// queue is full the sample is dropped and counted.
func (p *PersistenceManager) Persist(sample domain.Sample) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.enabled || p.storage == nil {
		return
	}
	select {
	case p.persistChan <- sample:
	default:
		telemetry.SamplesDropped.Inc()
	}
}

// IsEnabled returns the current persistence status.
func (p *PersistenceManager) IsEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

// SetEnabled toggles the persistence logic.
func (p *PersistenceManager) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
	slog.Info("Sample persistence toggled", "enabled", enabled)
}

// SetStorage updates the storage adapter used for persistence.
func (p *PersistenceManager) SetStorage(storage ports.Storage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.storage = storage
}

// Start begins the persistence loop. Pending samples are flushed when ctx
// is cancelled; Done is closed afterwards.
func (p *PersistenceManager) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	buffer := make([]domain.Sample, 0, p.batchSize)

	go func() {
		defer close(p.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.drain(&buffer)
				p.flushBuffer(buffer)
				return
			case s := <-p.persistChan:
				buffer = append(buffer, s)
				if len(buffer) >= p.batchSize {
					p.flushBuffer(buffer)
					buffer = buffer[:0]
				}
			case <-ticker.C:
				if len(buffer) > 0 {
					p.flushBuffer(buffer)
					buffer = buffer[:0]
				}
			}
		}
	}()
}

// Done is closed once the loop has exited and flushed.
func (p *PersistenceManager) Done() <-chan struct{} {
	return p.done
}

func (p *PersistenceManager) drain(buffer *[]domain.Sample) {
	for {
		select {
		case s := <-p.persistChan:
			*buffer = append(*buffer, s)
		default:
			return
		}
	}
}

func (p *PersistenceManager) flushBuffer(buffer []domain.Sample) {
	p.mu.RLock()
	storage := p.storage
	p.mu.RUnlock()
	if len(buffer) == 0 || storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	batch := append([]domain.Sample(nil), buffer...)
	if err := storage.SaveSamplesBatch(ctx, batch); err != nil {
		slog.Error("Failed to batch save samples", "count", len(batch), "error", err)
	}
}
