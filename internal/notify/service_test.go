package notify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/logger"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return NewWithClient(rdb, "noreply@hoopingweek.com", "Hooping Week", "smtp.test.com", "587", "test@example.com", "password")
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "User", "Hola", "Cuerpo de prueba")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueBookingDecision(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*aprobada.*`).SetVal(1)

	svc := newTestService(db)
	start := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	err := svc.QueueBookingDecision(ctx, "gian@example.com", "Gian", "Partido amistoso", "Cancha Norte", start, start.Add(time.Hour), true)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueBookingDecision_Rejected(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*RECHAZADA.*`).SetVal(1)

	svc := newTestService(db)
	start := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	err := svc.QueueBookingDecision(ctx, "gian@example.com", "Gian", "Partido amistoso", "Cancha Norte", start, start.Add(time.Hour), false)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueBookingCancelled(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*CANCELADA.*`).SetVal(1)

	svc := newTestService(db)
	start := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	err := svc.QueueBookingCancelled(ctx, "gian@example.com", "Gian", "Partido amistoso", "Cancha Norte", start, start.Add(time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(4)

	svc := newTestService(db)
	assert.Equal(t, int64(4), svc.QueueLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
