package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	sm := NewServiceManager(Dependencies{
		Repo:      env.repo,
		Verifier:  env.verifier,
		Publisher: env.publisher,
		Logger:    env.logger,
	}, ServiceManagerConfig{})

	assert.Panics(t, func() { sm.Roster() })
	assert.Error(t, sm.HealthCheck(context.Background()))

	require.NoError(t, sm.Initialize(context.Background()))
	require.NoError(t, sm.Initialize(context.Background()))

	assert.NotNil(t, sm.Roster())
	assert.NotNil(t, sm.User())
	assert.NotNil(t, sm.Course())
	assert.NotNil(t, sm.Tutor())
	assert.NotNil(t, sm.Career())
	assert.NotNil(t, sm.Export())
	assert.NoError(t, sm.HealthCheck(context.Background()))

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Error(t, sm.HealthCheck(context.Background()))
}

func TestServiceManager_RequiresDependencies(t *testing.T) {
	sm := NewServiceManager(Dependencies{}, ServiceManagerConfig{})
	assert.Error(t, sm.Initialize(context.Background()))
}
