// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/service"
)

const defaultResumeInterval = time.Minute

type pendingMigrations interface {
	ResumePending(ctx context.Context) (int, error)
}

// MigrationResumer periodically continues schema migrations that failed with
// a retryable error or were left running by a crashed process.
type MigrationResumer struct {
	migrations pendingMigrations
	interval   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewMigrationResumer(migrations service.MigrationService, cfg config.Workers, logger *logger.Logger) *MigrationResumer {
	return newMigrationResumer(migrations, cfg.MigrationResumeInterval, logger)
}

func newMigrationResumer(migrations pendingMigrations, interval time.Duration, logger *logger.Logger) *MigrationResumer {
	if interval <= 0 {
		interval = defaultResumeInterval
	}
	return &MigrationResumer{
		migrations: migrations,
		interval:   interval,
		logger:     logger,
	}
}

// Run stops a previous run, then resumes pending migrations every interval
// until ctx is cancelled or Stop is called.
func (m *MigrationResumer) Run(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	jobCtx, cancel := context.WithCancel(m.logger.WithContext(ctx))
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				m.tick(jobCtx)
			}
		}
	}()
}

func (m *MigrationResumer) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *MigrationResumer) tick(ctx context.Context) {
	completed, err := m.migrations.ResumePending(ctx)
	if err != nil {
		m.logger.Err(err).Str("func", "*MigrationResumer.tick").Msg("resuming migrations failed")
		return
	}
	if completed > 0 {
		m.logger.Info().Int("completed", completed).Msg("resumed list migrations")
	}
}
