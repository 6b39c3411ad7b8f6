package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cargo-portal/internal/store"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// A helper function to create a mock database connection.
func newTestStore(t *testing.T) (store.Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return store.NewGormStore(gormDB), mock
}

const subscriptionsQuery = `SELECT .* FROM "push_subscriptions".*JOIN .*subscription_shipment_mapping.*WHERE .*ssm\.tracked_shipment_tracking_number = \$1`

func okResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	s, _ := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{}, zap.NewNop())

	// Dispatch a job
	assert.True(t, wp.Dispatch(context.Background(), Job{TrackingNumber: "CG123456789", Status: "Delivered"}))

	// Check if the job is in the channel
	select {
	case job := <-wp.jobs:
		assert.Equal(t, "CG123456789", job.TrackingNumber)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchGivesUpOnCancel(t *testing.T) {
	wp := NewWorkerPool(1, nil, nil, zap.NewNop())
	require.True(t, wp.Dispatch(context.Background(), Job{TrackingNumber: "A"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, wp.Dispatch(ctx, Job{TrackingNumber: "B"}), "queue is full and ctx is done")
}

func TestMessage(t *testing.T) {
	p := Message(Job{TrackingNumber: "CG123456789", Status: "Out for Delivery"})
	assert.Equal(t, "Shipment CG123456789", p.Title)
	assert.Equal(t, "Shipment CG123456789 is now Out for Delivery.", p.Body)
	assert.Equal(t, "/track?number=CG123456789", p.URL)
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	s, mock := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	// --- Test Case: One subscription found, notification sent ---
	t.Run("sends notification for one subscription", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				defer wg.Done()
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.Equal(t, "test_p256dh", sub.Keys.P256dh)

				var p Payload
				assert.NoError(t, json.Unmarshal(payload, &p))
				assert.Equal(t, "Shipment CG100000001 is now Delivered.", p.Body)
				return okResponse(http.StatusCreated), nil
			},
		}

		mock.ExpectQuery(subscriptionsQuery).
			WithArgs("CG100000001").
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow("https://example.com/push", "test_p256dh", "test_auth", time.Now()))

		wp.Dispatch(ctx, Job{TrackingNumber: "CG100000001", Status: "Delivered"})
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// --- Test Case: Subscription expired, should be deleted ---
	t.Run("deletes expired subscription", func(t *testing.T) {
		sent := make(chan struct{}, 1)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				sent <- struct{}{}
				return okResponse(http.StatusGone), nil
			},
		}

		mock.ExpectQuery(subscriptionsQuery).
			WithArgs("CG100000002").
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow("https://example.com/expired", "k", "a", time.Now()))

		// Expect the delete operation
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM subscription_shipment_mapping WHERE push_subscription_endpoint = $1`)).
			WithArgs("https://example.com/expired").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "push_subscriptions" WHERE "push_subscriptions"."endpoint" = $1`)).
			WithArgs("https://example.com/expired").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		wp.Dispatch(ctx, Job{TrackingNumber: "CG100000002", Status: "Delivered"})
		<-sent

		assert.Eventually(t, func() bool {
			return mock.ExpectationsWereMet() == nil
		}, time.Second, 10*time.Millisecond)
	})

	// --- Test Case: Sender error does not delete ---
	t.Run("keeps subscription when sending fails", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(2)

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				defer wg.Done()
				return nil, errors.New("network down")
			},
		}

		mock.ExpectQuery(subscriptionsQuery).
			WithArgs("CG100000003").
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "created_at"}).
				AddRow("https://example.com/1", "k", "a", time.Now()).
				AddRow("https://example.com/2", "k", "a", time.Now()))

		wp.Dispatch(ctx, Job{TrackingNumber: "CG100000003", Status: "Delivered"})
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	wp := NewWorkerPool(3, nil, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	wp.Start(ctx)
	cancel()
}
