package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/smart-defence/academy-console/pkg/errors"
)

func TestTabSetLoadsLazilyAndOnce(t *testing.T) {
	loads := 0
	ts, err := NewTabSet(nil,
		Tab{Name: "profile"},
		Tab{Name: "financial", Load: func(ctx context.Context) error {
			loads++
			return nil
		}},
	)
	require.NoError(t, err)

	assert.Equal(t, "profile", ts.Active())
	assert.Equal(t, 0, loads, "nothing loads before activation")

	require.NoError(t, ts.Switch(context.Background(), "financial"))
	require.NoError(t, ts.Switch(context.Background(), "financial"))
	require.NoError(t, ts.Switch(context.Background(), "profile"))
	require.NoError(t, ts.Switch(context.Background(), "financial"))

	assert.Equal(t, 1, loads, "repeated activation must not reload")
	assert.Equal(t, "financial", ts.Active())
}

func TestTabSetRetriesFailedLoad(t *testing.T) {
	loads := 0
	ts, err := NewTabSet(nil,
		Tab{Name: "docs", Load: func(ctx context.Context) error {
			loads++
			if loads == 1 {
				return appErrors.ErrUpstreamUnavailable
			}
			return nil
		}},
	)
	require.NoError(t, err)

	require.Error(t, ts.Switch(context.Background(), "docs"))
	assert.False(t, ts.Loaded("docs"))

	require.NoError(t, ts.Switch(context.Background(), "docs"))
	assert.True(t, ts.Loaded("docs"))
	assert.Equal(t, 2, loads)
}

func TestTabSetRejectsUnknownName(t *testing.T) {
	ts, err := NewTabSet(nil, Tab{Name: "profile"})
	require.NoError(t, err)

	err = ts.Switch(context.Background(), "payments")
	require.Error(t, err)
	assert.Equal(t, "profile", ts.Active(), "active tab unchanged after rejection")
}

func TestTabSetRefreshForcesReload(t *testing.T) {
	loads := 0
	ts, err := NewTabSet(nil,
		Tab{Name: "history", Load: func(ctx context.Context) error {
			loads++
			return nil
		}},
	)
	require.NoError(t, err)

	require.NoError(t, ts.Switch(context.Background(), "history"))
	require.NoError(t, ts.Refresh(context.Background()))
	assert.Equal(t, 2, loads)
}

func TestTabSetRejectsDuplicates(t *testing.T) {
	_, err := NewTabSet(nil, Tab{Name: "a"}, Tab{Name: "a"})
	require.Error(t, err)

	_, err = NewTabSet(nil)
	require.Error(t, err)
}
