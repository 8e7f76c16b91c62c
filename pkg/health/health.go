package health

import (
	"context"
	"sync"
	"time"

	"github.com/storacha/ramd/pkg/build"
)

// Status represents the health status
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

const probeTimeout = 2 * time.Second

// Response represents a health check response
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Checks    []Check   `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

type namedProbe struct {
	name  string
	probe Probe
}

// Checker provides health check functionality. A new Checker is not ready
// until SetReady(true) is called, which the node does once RPC is serving.
type Checker struct {
	mu     sync.RWMutex
	ready  bool
	probes []namedProbe
}

// NewChecker creates a new health checker
func NewChecker() *Checker {
	return &Checker{}
}

// AddProbe registers a probe that readiness depends on.
func (c *Checker) AddProbe(name string, p Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes = append(c.probes, namedProbe{name: name, probe: p})
}

// SetReady sets the readiness state
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns the readiness state
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// LivenessCheck performs a liveness check
func (c *Checker) LivenessCheck() Response {
	return Response{
		Status:    StatusOK,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
	}
}

// ReadinessCheck reports ready when the node has started and every probe
// passes.
func (c *Checker) ReadinessCheck(ctx context.Context) Response {
	c.mu.RLock()
	ready := c.ready
	probes := append([]namedProbe(nil), c.probes...)
	c.mu.RUnlock()

	status := StatusOK
	if !ready {
		status = StatusFailed
	}

	checks := make([]Check, 0, len(probes))
	for _, p := range probes {
		check := Check{Name: p.name, Status: StatusOK}
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		if err := p.probe(pctx); err != nil {
			check.Status = StatusFailed
			check.Error = err.Error()
			status = StatusFailed
		}
		cancel()
		checks = append(checks, check)
	}

	return Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks:    checks,
	}
}

// HealthCheck performs a combined health check
func (c *Checker) HealthCheck(ctx context.Context) Response {
	liveness := c.LivenessCheck()
	readiness := c.ReadinessCheck(ctx)

	checks := []Check{
		{Name: "liveness", Status: liveness.Status},
		{Name: "readiness", Status: readiness.Status},
	}
	checks = append(checks, readiness.Checks...)

	return Response{
		Status:    readiness.Status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks:    checks,
	}
}
