package infrastructure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theiron97/hwopusd/pkg/infrastructure"
)

func newObservedAdapter(t *testing.T) (fxevent.Logger, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)

	return infrastructure.NewFxLoggerAdapter(zap.New(core)), logs
}

func TestFxLoggerAdapterLogsEvents(t *testing.T) {
	adapter, logs := newObservedAdapter(t)

	adapter.LogEvent(&fxevent.Started{})
	adapter.LogEvent(&fxevent.Stopped{})

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "STARTED", logs.All()[0].Message)
	assert.Equal(t, "STOPPED", logs.All()[1].Message)
}

func TestFxLoggerAdapterLogsErrors(t *testing.T) {
	adapter, logs := newObservedAdapter(t)

	adapter.LogEvent(&fxevent.Invoked{
		FunctionName: "startServer",
		Err:          errors.New("listen failed"),
	})

	entries := logs.FilterLevelExact(zap.ErrorLevel)
	require.Equal(t, 1, entries.Len())
	assert.Contains(t, entries.All()[0].Message, "startServer")
}

func TestFxLoggerAdapterIgnoresUnknownEvents(t *testing.T) {
	adapter, logs := newObservedAdapter(t)

	assert.NotPanics(t, func() {
		adapter.LogEvent(&fxevent.Run{})
	})
	assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
}
