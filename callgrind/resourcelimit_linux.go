//go:build linux

package callgrind

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"iaicallgrind-go/bmerrors"
)

const cgroupRoot = "/sys/fs/cgroup"

// MemoryLimit places the profiled subprocess under a cgroup v2 control
// group with a memory.max cap, so a benchmark that runs away cannot starve
// the machine running the rest of the suite. This is a narrow slice of the
// full OCI cgroup resource surface: only memory.max is exposed, since the
// runner's only resource concern is bounding one profiled child, not
// arbitrating shares/pids/cpuset/freeze across many containers.
type MemoryLimit struct {
	path string
}

// NewMemoryLimit creates (or reuses) a cgroup at "iai-callgrind/<name>"
// with memory.max set to limitBytes.
func NewMemoryLimit(name string, limitBytes int64) (*MemoryLimit, error) {
	path := filepath.Join(cgroupRoot, "iai-callgrind", name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, bmerrors.Wrap(err, bmerrors.KindOther, "create resource-limit cgroup")
	}

	if limitBytes > 0 {
		maxPath := filepath.Join(path, "memory.max")
		if err := os.WriteFile(maxPath, []byte(strconv.FormatInt(limitBytes, 10)), 0o644); err != nil {
			return nil, bmerrors.Wrap(err, bmerrors.KindOther, "set memory.max")
		}
	}

	return &MemoryLimit{path: path}, nil
}

// AddProcess places pid under this cgroup.
func (m *MemoryLimit) AddProcess(pid int) error {
	procsPath := filepath.Join(m.path, "cgroup.procs")
	if err := os.WriteFile(procsPath, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return bmerrors.Wrap(err, bmerrors.KindOther, "add process to resource-limit cgroup")
	}
	return nil
}

// CurrentUsage returns the cgroup's memory.current reading, for
// post-mortem diagnosis of a killed benchmark.
func (m *MemoryLimit) CurrentUsage() (int64, error) {
	data, err := os.ReadFile(filepath.Join(m.path, "memory.current"))
	if err != nil {
		return 0, err
	}
	var n int64
	if _, err := fmt.Sscanf(string(data), "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close removes the cgroup. The cgroup must be empty (its process exited)
// before this succeeds.
func (m *MemoryLimit) Close() error {
	return os.Remove(m.path)
}
