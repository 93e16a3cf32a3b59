//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
)

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
		actor:       "o.shokin@laptop",
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"o.shokin@laptop"}, md.Get(api.ActorMetadataKey))

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_RequiresAlarmID asserts that calls addressing an alarm reject an empty id.
func TestClient_RequiresAlarmID(t *testing.T) {
	t.Parallel()

	c := new(Client)
	ctx := context.Background()

	_, err := c.DeleteAlarm(ctx, "")
	require.ErrorIs(t, err, errAlarmIDRequired)

	_, err = c.ToggleAlarm(ctx, "")
	require.ErrorIs(t, err, errAlarmIDRequired)

	_, err = c.TriggerAlarm(ctx, "")
	require.ErrorIs(t, err, errAlarmIDRequired)

	_, err = c.UpdateAlarm(ctx, new(api.AlarmMessage))
	require.ErrorIs(t, err, errAlarmIDRequired)

	_, err = c.Deliver(ctx, "", "dismiss", time.Time{})
	require.ErrorIs(t, err, errAlarmIDRequired)
}
