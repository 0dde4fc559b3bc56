package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type refresherStub struct {
	keys []entity.ShowingKey
	err  error
}

func (r *refresherStub) RefreshSnapshot(_ context.Context, key entity.ShowingKey) error {
	r.keys = append(r.keys, key)
	return r.err
}

func newTestConsumer(r SnapshotRefresher) *Consumer {
	return NewConsumer(utils.RabbitMQConfig{Exchange: "bookings", Queue: "availability.snapshot"}, r, zap.NewNop())
}

func TestHandleMessage_RefreshesShowing(t *testing.T) {
	refresher := &refresherStub{}
	c := newTestConsumer(refresher)

	body, err := json.Marshal(BookingEvent{
		Type:      EventBookingConfirmed,
		BookingID: "b-1",
		MovieID:   "m1",
		TheatreID: "t1",
		ShowTime:  "20:30",
		Seats:     []string{"C7"},
	})
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(context.Background(), body))
	assert.Equal(t, []entity.ShowingKey{{MovieID: "m1", TheatreID: "t1", ShowTime: "20:30"}}, refresher.keys)
}

func TestHandleMessage_RejectsMalformedBody(t *testing.T) {
	refresher := &refresherStub{}
	c := newTestConsumer(refresher)

	err := c.handleMessage(context.Background(), []byte("{not json"))
	assert.Error(t, err)
	assert.Empty(t, refresher.keys)
}

func TestHandleMessage_RejectsIncompleteShowing(t *testing.T) {
	refresher := &refresherStub{}
	c := newTestConsumer(refresher)

	body, _ := json.Marshal(BookingEvent{Type: EventBookingCancelled, MovieID: "m1"})

	err := c.handleMessage(context.Background(), body)
	assert.Error(t, err)
	assert.Empty(t, refresher.keys)
}

func TestHandleMessage_PropagatesRefreshFailure(t *testing.T) {
	refresher := &refresherStub{err: errors.New("db down")}
	c := newTestConsumer(refresher)

	body, _ := json.Marshal(BookingEvent{Type: EventBookingConfirmed, MovieID: "m1", TheatreID: "t1", ShowTime: "10:00"})

	err := c.handleMessage(context.Background(), body)
	assert.ErrorContains(t, err, "db down")
}

func TestSleep_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Hour))
}
