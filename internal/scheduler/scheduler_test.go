package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStop(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Start())
	assert.Error(t, s.Start(), "second start must fail")

	s.Stop()
	// Stopping twice is a no-op.
	s.Stop()

	require.NoError(t, s.Start())
	s.Stop()
}

func TestRestartKeepsSingleJob(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Start())
	s.Stop()
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1, "restart must not register the publish job again")
}
