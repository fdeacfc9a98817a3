package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"maintenance-service/internal/model"
	"maintenance-service/internal/notifier"
	"maintenance-service/internal/repository"
)

func seedLogbook(t *testing.T, db *gorm.DB, supervisorID uuid.UUID) model.Logbook {
	t.Helper()

	logbook := model.Logbook{
		Name:         "Caldera 1 presión",
		Equipment:    "boiler-1",
		Unit:         "bar",
		MinValue:     2.0,
		MaxValue:     8.0,
		SupervisorID: supervisorID,
	}
	require.NoError(t, db.Create(&logbook).Error)
	return logbook
}

func TestRecordReading(t *testing.T) {
	db := setupTestDB(t)
	fn := &fakeNotifier{}
	svc := NewLogbookService(repository.NewLogbookRepository(db), fn)
	ctx := context.Background()

	supervisor := seedUser(t, db, model.RoleSupervisor, true)
	executor := asPrincipal(seedUser(t, db, model.RoleExecutor, true))
	logbook := seedLogbook(t, db, supervisor.ID)

	fixed := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	t.Run("in-range reading stays quiet", func(t *testing.T) {
		reading, err := svc.RecordReading(ctx, executor, logbook.ID.String(), RecordReadingInput{Value: 5.5})
		require.NoError(t, err)
		assert.Equal(t, model.ReadingStatusNormal, reading.Status)
		assert.Equal(t, fixed, reading.RecordedAt)
		assert.Empty(t, fn.events)
	})

	t.Run("boundary values are in range", func(t *testing.T) {
		low, err := svc.RecordReading(ctx, executor, logbook.ID.String(), RecordReadingInput{Value: 2.0})
		require.NoError(t, err)
		assert.Equal(t, model.ReadingStatusNormal, low.Status)

		high, err := svc.RecordReading(ctx, executor, logbook.ID.String(), RecordReadingInput{Value: 8.0})
		require.NoError(t, err)
		assert.Equal(t, model.ReadingStatusNormal, high.Status)
		assert.Empty(t, fn.events)
	})

	t.Run("out-of-range reading alerts the supervisor", func(t *testing.T) {
		reading, err := svc.RecordReading(ctx, executor, logbook.ID.String(), RecordReadingInput{
			Value: 9.3,
			Note:  "válvula de alivio abierta",
		})
		require.NoError(t, err)
		assert.Equal(t, model.ReadingStatusOutOfRange, reading.Status)
		require.NotNil(t, reading.Note)

		require.Len(t, fn.events, 1)
		event := fn.events[0]
		assert.Equal(t, notifier.EventReadingOutOfRange, event.Type)
		assert.Equal(t, logbook.ID, *event.LogbookID)
		require.NotNil(t, event.Value)
		assert.Equal(t, 9.3, *event.Value)
		assert.Equal(t, []uuid.UUID{supervisor.ID}, event.Recipients)
	})

	t.Run("requesters cannot record", func(t *testing.T) {
		requester := asPrincipal(seedUser(t, db, model.RoleRequester, true))
		_, err := svc.RecordReading(ctx, requester, logbook.ID.String(), RecordReadingInput{Value: 5})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown logbook", func(t *testing.T) {
		_, err := svc.RecordReading(ctx, executor, uuid.NewString(), RecordReadingInput{Value: 5})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListReadingsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLogbookService(repository.NewLogbookRepository(db), &fakeNotifier{})
	ctx := context.Background()

	supervisor := seedUser(t, db, model.RoleSupervisor, true)
	executor := asPrincipal(seedUser(t, db, model.RoleExecutor, true))
	logbook := seedLogbook(t, db, supervisor.ID)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		tick := base.Add(time.Duration(i) * time.Hour)
		timeNow = func() time.Time { return tick }
		_, err := svc.RecordReading(ctx, executor, logbook.ID.String(), RecordReadingInput{Value: float64(3 + i)})
		require.NoError(t, err)
	}
	timeNow = time.Now

	readings, err := svc.ListReadings(ctx, asPrincipal(supervisor), logbook.ID.String())
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, 5.0, readings[0].Value)
	assert.Equal(t, 3.0, readings[2].Value)
}
