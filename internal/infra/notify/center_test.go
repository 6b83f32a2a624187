package notify_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestay/internal/infra/notify"
	"luxestay/internal/tilt"
)

func TestCenterListsNewestFirst(t *testing.T) {
	center := notify.NewCenter()
	center.Push("u1", "first", tilt.KindInfo, 0)
	center.Push("u1", "second", tilt.KindSuccess, 2*time.Second)

	feed := center.ListForUser("u1")
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Message)
	assert.Equal(t, string(tilt.KindSuccess), feed[0].Kind)
	assert.Equal(t, "first", feed[1].Message)

	assert.Empty(t, center.ListForUser("u2"))
}

func TestCenterIgnoresBlankInput(t *testing.T) {
	center := notify.NewCenter()
	center.Push("", "message", tilt.KindInfo, 0)
	center.Push("u1", "", tilt.KindInfo, 0)
	assert.Empty(t, center.ListForUser("u1"))
}

func TestCenterEvictsOldestWhenFull(t *testing.T) {
	center := notify.NewCenter()
	for i := 0; i < 60; i++ {
		center.Push("u1", fmt.Sprintf("msg-%d", i), tilt.KindInfo, 0)
	}
	feed := center.ListForUser("u1")
	require.Len(t, feed, 50)
	assert.Equal(t, "msg-59", feed[0].Message)
	assert.Equal(t, "msg-10", feed[len(feed)-1].Message)
}

func TestForUserAdaptsNotifier(t *testing.T) {
	center := notify.NewCenter()
	notifier := center.ForUser("u1")
	notifier.Notify("tilt back to return", tilt.KindInfo, 3*time.Second)

	feed := center.ListForUser("u1")
	require.Len(t, feed, 1)
	assert.Equal(t, "tilt back to return", feed[0].Message)
	assert.Equal(t, 3*time.Second, feed[0].Duration)
}

func TestBookingEventHandler(t *testing.T) {
	center := notify.NewCenter()
	handler := notify.BookingEventHandler{Center: center}
	ctx := context.Background()

	created := []byte(`{"specversion":"1.0","type":"booking.created.v1","data":{"BookingID":"b1","UserID":"u1"}}`)
	require.NoError(t, handler.Handle(ctx, &sarama.ConsumerMessage{Value: created}))

	cancelled := []byte(`{"specversion":"1.0","type":"booking.cancelled.v1","data":{"BookingID":"b1","UserID":"u1"}}`)
	require.NoError(t, handler.Handle(ctx, &sarama.ConsumerMessage{Value: cancelled}))

	unknown := []byte(`{"specversion":"1.0","type":"property.updated.v1","data":{"UserID":"u1"}}`)
	require.NoError(t, handler.Handle(ctx, &sarama.ConsumerMessage{Value: unknown}))

	feed := center.ListForUser("u1")
	require.Len(t, feed, 2)
	assert.Equal(t, "Your booking was cancelled", feed[0].Message)
	assert.Equal(t, "Your booking is confirmed", feed[1].Message)

	err := handler.Handle(ctx, &sarama.ConsumerMessage{Value: []byte("not json")})
	assert.Error(t, err)
}
