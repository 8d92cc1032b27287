// Package health reports readiness. Seeding failures are deliberately
// non-fatal at startup, so a missing document has to be visible somewhere;
// this is that somewhere.
package health

import (
	"context"
	"encoding/json"
	"net/http"
)

type CheckFunc func(ctx context.Context) error

type Checker struct {
	names  []string
	checks map[string]CheckFunc
}

func NewChecker() *Checker {
	return &Checker{checks: make(map[string]CheckFunc)}
}

// Register adds a named check. Checks run in registration order.
func (c *Checker) Register(name string, fn CheckFunc) {
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
	}
	c.checks[name] = fn
}

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler runs every check and answers 200 when all pass, 503 otherwise,
// with per-check detail either way.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep := report{Status: "ok", Checks: make(map[string]string, len(c.names))}
		for _, name := range c.names {
			if err := c.checks[name](r.Context()); err != nil {
				rep.Status = "unavailable"
				rep.Checks[name] = err.Error()
			} else {
				rep.Checks[name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if rep.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(rep)
	}
}
