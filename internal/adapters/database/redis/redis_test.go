package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-styler/internal/adapters/database/redis"
	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewFromClients(
		backend.NewClient(&backend.Options{Addr: mr.Addr(), DB: 0}),
		backend.NewClient(&backend.Options{Addr: mr.Addr(), DB: 1}),
	)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestForms(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	_, err := client.Forms.Get(ctx, 42)
	assert.ErrorIs(t, err, errorz.ErrSessionNotFound)

	state := qrstyle.Default()
	state.Data = "https://example.com"
	state.DotsOptions.Gradient = qrstyle.GradientForm{
		Enabled: true,
		Type:    qrstyle.GradientRadial,
		ColorStops: []qrstyle.GradientStop{
			{ID: "b", Offset: 1, Color: "#00ff00"},
			{ID: "a", Offset: 0, Color: "#ff0000"},
		},
	}
	require.NoError(t, client.Forms.Set(ctx, 42, state, time.Hour))

	got, err := client.Forms.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	mr.FastForward(2 * time.Hour)
	_, err = client.Forms.Get(ctx, 42)
	assert.ErrorIs(t, err, errorz.ErrSessionNotFound)

	require.NoError(t, client.Forms.Set(ctx, 42, state, 0))
	require.NoError(t, client.Forms.Clear(ctx, 42))
	_, err = client.Forms.Get(ctx, 42)
	assert.ErrorIs(t, err, errorz.ErrSessionNotFound)
}

func TestForms_Corrupted(t *testing.T) {
	mr, client := setup(t)
	require.NoError(t, mr.DB(1).Set("form:7", `{"shape":"triangle"}`))

	_, err := client.Forms.Get(context.Background(), 7)
	assert.ErrorIs(t, err, qrstyle.ErrUnknownValue)
}

func TestStates(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	st, err := client.States.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, st.State)

	require.NoError(t, client.States.Set(ctx, 1, "await_field", "dots.gradient.stops", time.Minute))
	st, err = client.States.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "await_field", st.State)
	assert.Equal(t, "dots.gradient.stops", st.StateContext)

	require.NoError(t, client.States.Clear(ctx, 1))
	st, err = client.States.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, st.State)

	require.NoError(t, mr.DB(0).Set("state:2", ":orphan"))
	_, err = client.States.Get(ctx, 2)
	assert.ErrorIs(t, err, errorz.ErrInvalidState)
}

func TestCallbacks(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	id, err := client.Callbacks.Set(ctx, "a rather long preset name", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.DB(0).Exists("callback:"+id))

	data, err := client.Callbacks.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a rather long preset name", data)

	data, err = client.Callbacks.Get(ctx, id)
	require.NoError(t, err, "reading keeps the entry")
	assert.Equal(t, "a rather long preset name", data)

	mr.FastForward(2 * time.Minute)
	_, err = client.Callbacks.Get(ctx, id)
	assert.ErrorIs(t, err, errorz.ErrInvalidCallbackData)
}
