package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type spyMigrations struct {
	calls atomic.Int64
	err   error
}

func (s *spyMigrations) ResumePending(context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestMigrationResumer_ResumesOnTick(t *testing.T) {
	spy := &spyMigrations{}
	resumer := newMigrationResumer(spy, 10*time.Millisecond, logger.Nop())

	resumer.Run(context.Background())
	defer resumer.Stop()

	require.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestMigrationResumer_KeepsGoingAfterError(t *testing.T) {
	spy := &spyMigrations{err: errors.New("db is down")}
	resumer := newMigrationResumer(spy, 10*time.Millisecond, logger.Nop())

	resumer.Run(context.Background())
	defer resumer.Stop()

	require.Eventually(t, func() bool { return spy.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestMigrationResumer_Stop(t *testing.T) {
	spy := &spyMigrations{}
	resumer := newMigrationResumer(spy, 10*time.Millisecond, logger.Nop())

	resumer.Run(context.Background())
	time.Sleep(30 * time.Millisecond)
	resumer.Stop()

	afterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterStop, spy.calls.Load(), "no ticks after Stop")
}

func TestMigrationResumer_StopsWithContext(t *testing.T) {
	spy := &spyMigrations{}
	resumer := newMigrationResumer(spy, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	resumer.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		resumer.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after ctx was cancelled")
	}
}

func TestMigrationResumer_StopBeforeRun(t *testing.T) {
	resumer := newMigrationResumer(&spyMigrations{}, time.Minute, logger.Nop())

	assert.NotPanics(t, resumer.Stop)
}

func TestMigrationResumer_RunTwiceKeepsOneLoop(t *testing.T) {
	spy := &spyMigrations{}
	resumer := newMigrationResumer(spy, 10*time.Millisecond, logger.Nop())

	resumer.Run(context.Background())
	resumer.Run(context.Background())
	resumer.Stop()

	afterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterStop, spy.calls.Load())
}

func TestNewMigrationResumer_UsesService(t *testing.T) {
	ctrl := gomock.NewController(t)
	migrations := mock.NewMockMigrationService(ctrl)
	migrations.EXPECT().ResumePending(gomock.Any()).Return(0, nil).MinTimes(1)

	resumer := NewMigrationResumer(migrations, config.Workers{MigrationResumeInterval: 5 * time.Millisecond}, logger.Nop())
	resumer.Run(context.Background())
	time.Sleep(30 * time.Millisecond)
	resumer.Stop()
}

func TestNewMigrationResumer_DefaultInterval(t *testing.T) {
	resumer := NewMigrationResumer(nil, config.Workers{}, logger.Nop())

	assert.Equal(t, defaultResumeInterval, resumer.interval)
}
