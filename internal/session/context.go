package session

import (
	"sync"
	"time"
)

// Context holds the current session state: when it started and how the
// initial view was resolved.
type Context struct {
	mu     sync.RWMutex
	start  time.Time
	launch *Launch
}

// NewContext creates a new Context with default values
func NewContext() *Context {
	return &Context{
		start:  time.Now(),
		launch: &Launch{Source: SourceDefault},
	}
}

// Start returns the session start time
func (sc *Context) Start() time.Time {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.start
}

// GetLaunch returns the resolved launch state
func (sc *Context) GetLaunch() *Launch {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.launch
}

// SetLaunch records the resolved launch state
func (sc *Context) SetLaunch(launch *Launch) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.launch = launch
}
