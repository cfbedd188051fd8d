//go:build !linux

package callgrind

import "log/slog"

// MemoryLimit is a no-op on platforms without cgroup v2, since there is no
// portable equivalent to cap a single child process's memory.
type MemoryLimit struct{}

// NewMemoryLimit logs that the requested limit cannot be enforced here and
// returns a MemoryLimit whose methods do nothing.
func NewMemoryLimit(name string, limitBytes int64) (*MemoryLimit, error) {
	slog.Warn("memory limiting unsupported on this platform, running unconstrained", "name", name)
	return &MemoryLimit{}, nil
}

// AddProcess is a no-op.
func (m *MemoryLimit) AddProcess(pid int) error { return nil }

// Close is a no-op.
func (m *MemoryLimit) Close() error { return nil }
