package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillPublisher_GoChannelDelivery(t *testing.T) {
	publisher, pubSub := NewGoChannelPublisher("nova", testLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, publisher.Topic(CourseCreated))
	require.NoError(t, err)

	event := NewEvent(CourseCreated, CourseData{CourseID: "c1", TeacherID: "t1"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, CourseCreated, msg.Metadata.Get("type"))

		var decoded Event
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventSource, decoded.Source)
		assert.Equal(t, EventVersion, decoded.Version)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestWatermillPublisher_Topic(t *testing.T) {
	withPrefix, _ := NewGoChannelPublisher("nova", testLogger())
	assert.Equal(t, "nova.doubt.asked", withPrefix.Topic(DoubtAsked))

	noPrefix, _ := NewGoChannelPublisher("", testLogger())
	assert.Equal(t, "doubt.asked", noPrefix.Topic(DoubtAsked))
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent(UserSynced, nil)))
	require.NoError(t, mock.Publish(ctx, NewEvent(DoubtAsked, nil)))
	assert.Equal(t, []string{UserSynced, DoubtAsked}, mock.Types())

	mock.ClearEvents()
	mock.FailWith(errors.New("broker down"))
	assert.Error(t, mock.Publish(ctx, NewEvent(UserSynced, nil)))
	assert.Empty(t, mock.GetPublishedEvents())
}
