package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/supakorn-kn/peponi-admin/metrics"
	"github.com/supakorn-kn/peponi-admin/objects"
	"github.com/supakorn-kn/peponi-admin/screen"
)

const (
	CookieName = "peponi_session"
	contextKey = "session"
)

// Session is one browser of a signed in admin. It holds at most one mounted screen.
type Session struct {
	ID string

	mu      sync.Mutex
	mounted screen.Mounted
}

// Mounted returns the screen currently mounted, nil when none is.
func (s *Session) Mounted() screen.Mounted {

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mounted
}

// Unmount discards the mounted screen.
func (s *Session) Unmount() {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted != nil {
		s.mounted.Close()
		s.mounted = nil
	}
}

// Acquire returns the screen of entity mounted in sess, mounting a new one from create when the session
// shows another screen. The boolean reports whether the screen was just created.
func Acquire[R objects.Record](sess *Session, entity string, create func() *screen.Screen[R]) (*screen.Screen[R], bool) {

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.mounted != nil && sess.mounted.Entity() == entity {
		if current, ok := sess.mounted.(*screen.Screen[R]); ok {
			return current, false
		}
	}

	if sess.mounted != nil {
		sess.mounted.Close()
	}

	created := create()
	sess.mounted = created

	return created, true
}

type Manager struct {
	sessions *expirable.LRU[string, *Session]
	ttl      time.Duration
	secure   bool
	metrics  *metrics.Metrics
}

func NewManager(size int, ttl time.Duration, secure bool, m *metrics.Metrics) *Manager {

	onEvict := func(_ string, sess *Session) {
		sess.Unmount()
	}

	return &Manager{
		sessions: expirable.NewLRU[string, *Session](size, onEvict, ttl),
		ttl:      ttl,
		secure:   secure,
		metrics:  m,
	}
}

// Middleware attaches the session of the request, starting one when the cookie is missing or expired.
func (m *Manager) Middleware() gin.HandlerFunc {

	return func(c *gin.Context) {

		c.Set(contextKey, m.resolve(c))
		c.Next()
	}
}

func (m *Manager) resolve(c *gin.Context) *Session {

	if id, err := c.Cookie(CookieName); err == nil {
		if sess, ok := m.sessions.Get(id); ok {
			return sess
		}
	}

	sess := &Session{ID: uuid.NewString()}
	m.sessions.Add(sess.ID, sess)
	m.metrics.SetActiveSessions(m.sessions.Len())

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, sess.ID, int(m.ttl.Seconds()), "/", "", m.secure, true)

	return sess
}

// Destroy forgets the session of the request.
func (m *Manager) Destroy(c *gin.Context) {

	if sess, ok := From(c); ok {
		m.sessions.Remove(sess.ID)
		m.metrics.SetActiveSessions(m.sessions.Len())
	}

	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}

func From(c *gin.Context) (*Session, bool) {

	value, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}

	sess, ok := value.(*Session)
	return sess, ok
}
