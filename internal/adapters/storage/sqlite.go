package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements ports.Storage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// SampleModel is the GORM model for archived samples.
type SampleModel struct {
	ID            uint      `gorm:"primaryKey"`
	Timestamp     time.Time `gorm:"index"`
	TotalCurrency int64
	TotalCommands int64
	CPU           float64
	Memory        float64
	Latency       int64
	Commands      string // JSON encoded map[string]int64
}

// AuditLogModel is the GORM model for audit entries.
type AuditLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	Actor     string `gorm:"index"`
	Action    string
	Target    string
	Details   string
	IPAddress string
	RequestID string
	Timestamp time.Time `gorm:"index"`
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := db.Use(tracing.NewPlugin()); err != nil {
		return nil, fmt.Errorf("install tracing plugin: %w", err)
	}

	// Auto Migrate
	if err := db.AutoMigrate(&SampleModel{}, &AuditLogModel{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteAdapter{db: db}, nil
}

func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// SaveSamplesBatch saves multiple samples in a single transaction.
func (a *SQLiteAdapter) SaveSamplesBatch(ctx context.Context, samples []domain.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	models := make([]SampleModel, len(samples))
	for i, s := range samples {
		models[i] = toSampleModel(s)
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
}

// ListSamples returns archived samples, oldest first. A positive limit keeps
// the most recent samples.
func (a *SQLiteAdapter) ListSamples(ctx context.Context, filter domain.SampleFilter) ([]domain.Sample, error) {
	query := a.db.WithContext(ctx).Model(&SampleModel{})
	if !filter.Since.IsZero() {
		query = query.Where("timestamp >= ?", filter.Since)
	}

	var models []SampleModel
	if filter.Limit > 0 {
		query = query.Order("timestamp desc").Limit(filter.Limit)
	} else {
		query = query.Order("timestamp asc")
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	if filter.Limit > 0 {
		for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
			models[i], models[j] = models[j], models[i]
		}
	}

	samples := make([]domain.Sample, len(models))
	for i, m := range models {
		samples[i] = toSample(m)
	}
	return samples, nil
}

// CountSamples returns the archive size.
func (a *SQLiteAdapter) CountSamples(ctx context.Context) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&SampleModel{}).Count(&count).Error
	return count, err
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.Storage = (*SQLiteAdapter)(nil)
