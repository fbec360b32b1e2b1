package pkg

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStaticVerifier(t *testing.T) {
	v, err := StaticVerifier([]string{"tok-a:T1:teacher@manan.ai", "tok-b:S1"})
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "T1", id.Subject)
	assert.Equal(t, "teacher@manan.ai", id.Email)

	id, err = v.Verify(context.Background(), "tok-b")
	require.NoError(t, err)
	assert.Equal(t, "S1", id.Subject)

	_, err = StaticVerifier([]string{"missing-uid"})
	assert.Error(t, err)
}

func TestNewVerifier_Static(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Provider: config.AuthStatic, StaticTokens: []string{"t:u"}}}
	v, err := NewVerifier(context.Background(), cfg, nil)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "u", id.Subject)

	cfg.Auth.Provider = config.AuthFirebase
	_, err = NewVerifier(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestInitStore_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreMemory}}
	s, err := InitStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, s)

	cfg.Store.Backend = config.StoreFirestore
	_, err = InitStore(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())

	_, err = NewRedisClient(&config.Config{RedisURL: "://bad"})
	assert.Error(t, err)
}

func TestNewGenerator_WithoutKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), &config.Config{}, nil, discardLogger())
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "", "hello")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestNewEventPublisher_InProcess(t *testing.T) {
	cfg := &config.Config{Kafka: config.KafkaConfig{TopicPrefix: "nova-scholar"}}
	publisher, err := NewEventPublisher(cfg, discardLogger())
	require.NoError(t, err)
	defer publisher.Close()

	assert.NoError(t, publisher.Publish(context.Background(), events.NewEvent(events.CourseCreated, events.CourseData{CourseID: "c1"})))
}
