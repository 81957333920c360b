package reconciler

import (
	"sync"
	"time"

	"github.com/DevNutsPk/demoEcommerce/gateway"
	"github.com/DevNutsPk/demoEcommerce/localstore"
	"github.com/DevNutsPk/demoEcommerce/models"
	"gorm.io/gorm"
)

// Notifier receives sync progress events (e.g. for websocket broadcast).
type Notifier func(models.SyncEvent)

// Session is the cart state for one device: the current mode, the
// authenticated identity (if any) and the outcome of the last merge.
//
// One mutex serializes every read-modify-write cycle against the local
// store, the merge loop and logout, so at most one mutation cycle is in
// flight per session and a logout can never interleave with a merge
// that is rewriting the same record.
type Session struct {
	deviceID string

	mu         sync.Mutex
	mode       models.Mode
	userID     string
	syncStatus models.SyncStatus
	lastMerge  *models.MergeResult

	local   localstore.Store
	remote  gateway.RemoteCart
	catalog gateway.ProductCatalog
	notify  Notifier
}

// Mode returns the session's current mode.
func (s *Session) Mode() models.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SyncStatus returns the outcome of the last merge.
func (s *Session) SyncStatus() models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncStatus
}

// UserID returns the authenticated identity, empty in guest mode.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// LastMerge returns the last merge result, nil if no merge has run.
func (s *Session) LastMerge() *models.MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMerge
}

// emit must be called with s.mu held.
func (s *Session) emit(ev models.SyncEvent) {
	if s.notify == nil {
		return
	}
	ev.DeviceID = s.deviceID
	ev.UserID = s.userID
	ev.At = time.Now()
	s.notify(ev)
}

// Manager hands out one Session per device ID. Sessions are created
// lazily; a request presenting an authenticated token resumes straight
// into authenticated mode.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	db      *gorm.DB
	remote  gateway.RemoteCart
	catalog gateway.ProductCatalog
	notify  Notifier
}

func NewManager(db *gorm.DB, remote gateway.RemoteCart, catalog gateway.ProductCatalog) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		db:       db,
		remote:   remote,
		catalog:  catalog,
	}
}

// SetNotifier wires the sync event sink. Call before serving traffic.
func (m *Manager) SetNotifier(fn Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = fn
}

// Session returns the session for deviceID, creating it if needed.
// userID may be empty (guest); if set, a fresh session starts in
// authenticated mode without re-running the merge.
func (m *Manager) Session(deviceID, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[deviceID]; ok {
		return s
	}

	s := &Session{
		deviceID:   deviceID,
		mode:       models.ModeGuest,
		syncStatus: models.SyncIdle,
		local:      localstore.New(m.db, "guest_cart:"+deviceID),
		remote:     m.remote,
		catalog:    m.catalog,
		notify:     m.notify,
	}
	if userID != "" {
		s.mode = models.ModeAuthenticated
		s.userID = userID
	}
	m.sessions[deviceID] = s
	return s
}

// newSessionForTest builds a session over explicit collaborators.
func newSessionForTest(deviceID string, local localstore.Store, remote gateway.RemoteCart, catalog gateway.ProductCatalog, notify Notifier) *Session {
	return &Session{
		deviceID:   deviceID,
		mode:       models.ModeGuest,
		syncStatus: models.SyncIdle,
		local:      local,
		remote:     remote,
		catalog:    catalog,
		notify:     notify,
	}
}
