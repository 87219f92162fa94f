package serve

import (
	"sync"
	"time"

	"github.com/dgallion1/docsite/internal/site"
)

// buildState tracks the outcome of the most recent build for the health
// endpoint. Rebuilds run on the watcher goroutine while requests read
// concurrently, so all access goes through the mutex.
type buildState struct {
	mu sync.Mutex

	building  bool
	builds    int
	pages     int
	assets    int
	warnings  int
	lastError string
	lastBuild time.Time
}

func (st *buildState) begin() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.building = true
}

func (st *buildState) finish(sum *site.Summary, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.building = false
	st.builds++
	st.lastBuild = time.Now()
	st.lastError = ""
	if err != nil {
		st.lastError = err.Error()
	}
	if sum != nil {
		st.pages = sum.Pages
		st.assets = sum.Assets
		st.warnings = len(sum.Warnings)
	}
}

// StateSnapshot is a read-only, JSON-safe copy of the server state.
type StateSnapshot struct {
	Status    string    `json:"status"`
	Builds    int       `json:"builds"`
	Pages     int       `json:"pages"`
	Assets    int       `json:"assets"`
	Warnings  int       `json:"warnings"`
	LastBuild time.Time `json:"last_build"`
	LastError string    `json:"last_error,omitempty"`
}

// snapshot returns a JSON-safe copy of the build state.
func (st *buildState) snapshot() StateSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	status := "ok"
	switch {
	case st.building:
		status = "building"
	case st.lastError != "":
		status = "failed"
	case st.builds == 0:
		status = "pending"
	}
	return StateSnapshot{
		Status:    status,
		Builds:    st.builds,
		Pages:     st.pages,
		Assets:    st.assets,
		Warnings:  st.warnings,
		LastBuild: st.lastBuild,
		LastError: st.lastError,
	}
}
