// Package health exposes liveness and readiness probes for long corpus runs
// supervised by an orchestrator. Components register named Check functions
// probing their inputs (corpus directory, reference file, frequency table).
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"
)

// Check probes a single dependency. A nil return means the dependency is
// usable.
type Check func(ctx context.Context) error

// Checker manages registered checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewChecker creates an empty Checker.
func NewChecker() *Checker {
	return &Checker{checks: make(map[string]Check)}
}

// Register adds a named check.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// DirCheck returns a Check verifying that a directory exists and is readable.
func DirCheck(path string) Check {
	return func(ctx context.Context) error {
		_, err := os.ReadDir(path)
		return err
	}
}

// FileCheck returns a Check verifying that a file exists.
func FileCheck(path string) Check {
	return func(ctx context.Context) error {
		_, err := os.Stat(path)
		return err
	}
}

// Run executes all registered checks and returns the per-component failures.
func (c *Checker) Run(ctx context.Context) map[string]string {
	c.mu.RLock()
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	failures := make(map[string]string)
	for name, check := range checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	return failures
}

// LiveHandler reports that the process is alive.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadyHandler runs the registered checks and reports 503 when any fail.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		failures := c.Run(ctx)
		w.Header().Set("Content-Type", "application/json")
		if len(failures) == 0 {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(failures)
	}
}
