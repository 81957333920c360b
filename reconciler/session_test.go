package reconciler

import (
	"testing"

	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReturnsOneSessionPerDevice(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, &fakeRemote{}, &fakeCatalog{})

	s1 := m.Session("dev-1", "")
	s2 := m.Session("dev-1", "")
	other := m.Session("dev-2", "")

	assert.Same(t, s1, s2)
	assert.NotSame(t, s1, other)
}

func TestManagerResumesAuthenticatedSessions(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, &fakeRemote{}, &fakeCatalog{})

	s := m.Session("dev-1", "u-42")
	assert.Equal(t, models.ModeAuthenticated, s.Mode())
	assert.Equal(t, "u-42", s.UserID())
	assert.Equal(t, models.SyncIdle, s.SyncStatus())

	// The resumed identity sticks; a later guest-looking request for the
	// same device does not demote the session.
	again := m.Session("dev-1", "")
	require.Same(t, s, again)
	assert.Equal(t, models.ModeAuthenticated, again.Mode())
}

func TestManagerNewSessionsStartGuestIdle(t *testing.T) {
	t.Parallel()

	m := NewManager(nil, &fakeRemote{}, &fakeCatalog{})

	s := m.Session("dev-1", "")
	assert.Equal(t, models.ModeGuest, s.Mode())
	assert.Empty(t, s.UserID())
	assert.Equal(t, models.SyncIdle, s.SyncStatus())
}
