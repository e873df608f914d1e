package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker tests a dependency. A nil error means healthy.
type Checker func(ctx context.Context) error

type Manager struct {
	ready  atomic.Bool
	checks map[string]Checker
}

// NewManager creates a Manager with the given readiness
func NewManager(initialReady bool) *Manager {
	m := &Manager{checks: make(map[string]Checker)}
	m.ready.Store(initialReady)
	return m
}

// AddCheck registers a readiness check. Not safe to call once serving.
func (m *Manager) AddCheck(name string, check Checker) {
	m.checks[name] = check
}

// SetReady flips the readiness flag
func (m *Manager) SetReady(ready bool) {
	m.ready.Store(ready)
}

// IsReady reports the readiness flag
func (m *Manager) IsReady() bool {
	return m.ready.Load()
}

// Check runs every registered check and returns the failures by name
func (m *Manager) Check(ctx context.Context) map[string]string {
	failures := make(map[string]string)
	for name, check := range m.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	return failures
}

// LivenessHandler answers 200 while the process is running
func LivenessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadinessHandler answers 200 when ready and every check passes, 503 otherwise
func ReadinessHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsReady() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if failures := m.Check(ctx); len(failures) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": failures})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
