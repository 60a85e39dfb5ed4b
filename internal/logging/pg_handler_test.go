package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))
	return db
}

func TestPGHandlerOnlyAcceptsErrorLevel(t *testing.T) {
	h := NewPGHandler(setupLogDB(t))
	defer h.Stop()

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestPGHandlerBuffersAndFlushes(t *testing.T) {
	db := setupLogDB(t)
	h := NewPGHandler(db)

	record := slog.NewRecord(time.Now(), slog.LevelError, "database connection failed", 0)
	record.AddAttrs(
		slog.String("request_id", "req-123"),
		slog.String("error", "dial tcp: connection refused"),
		slog.String("component", "database"),
	)
	require.NoError(t, h.Handle(context.Background(), record))

	// Stop forces a final flush
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "database connection failed", logs[0].Message)
	assert.Equal(t, "ERROR", logs[0].Level)
	assert.Equal(t, "req-123", logs[0].RequestID)
	assert.Equal(t, "dial tcp: connection refused", logs[0].Error)
	assert.Contains(t, string(logs[0].Extra), "component")
}

func TestMultiHandlerFansOut(t *testing.T) {
	db := setupLogDB(t)
	pg := NewPGHandler(db)

	recorder := &recordingHandler{}
	multi := NewMultiHandler(recorder, pg)

	ctx := context.Background()
	require.NoError(t, multi.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "request served", 0)))
	require.NoError(t, multi.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelError, "request failed", 0)))

	pg.Stop()

	// The recorder saw both records; the DB handler only the error
	assert.Equal(t, 2, recorder.count)

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

type recordingHandler struct {
	count int
}

func (r *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (r *recordingHandler) Handle(_ context.Context, _ slog.Record) error {
	r.count++
	return nil
}
func (r *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(string) slog.Handler      { return r }
