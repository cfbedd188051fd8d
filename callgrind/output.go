package callgrind

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"iaicallgrind-go/bmerrors"
)

// forbiddenNameChars are filesystem-hostile characters replaced by "_" when
// sanitizing a benchmark name for use in a file name.
const forbiddenNameChars = `/\:*?"<>|`

// maxFileNameBytes is the filename budget OutputPath must fit within,
// including the longest possible suffix ("<tool>." prefix plus ".out.old").
const maxFileNameBytes = 255

// OutputPath is the canonical on-disk location for one benchmark's
// profiler output: <directory>/<tool>.<baseName>.<extension>. It is an
// immutable value type; its methods never modify the receiver. The only
// filesystem mutation it performs is the rotation done by Create.
type OutputPath struct {
	ToolID    string
	Directory string
	BaseName  string
	Extension string
}

// sanitizeName replaces forbidden filesystem characters with "_" and
// truncates (on a UTF-8 boundary) so the full "<tool>.<name>.<ext>.old"
// filename fits within maxFileNameBytes.
func sanitizeName(toolID, rawName, extension string) string {
	var b strings.Builder
	for _, r := range rawName {
		if strings.ContainsRune(forbiddenNameChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	name := b.String()

	reserved := len(toolID) + 1 + 1 + len(extension) + len(".old")
	budget := maxFileNameBytes - reserved
	if budget < 0 {
		budget = 0
	}
	if len(name) <= budget {
		return name
	}

	truncated := name[:budget]
	for len(truncated) > 0 && !isUTF8Boundary(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}

func isUTF8Boundary(s string) bool {
	if s == "" {
		return true
	}
	c := s[len(s)-1]
	return c&0xC0 != 0x80
}

// modulePathDir turns a "my_mod::sub::bench" sentinel-style path into a
// directory path "my_mod/sub/bench" appended to base.
func modulePathDir(base, module string) string {
	parts := strings.Split(module, "::")
	return filepath.Join(append([]string{base}, parts...)...)
}

// Create computes the OutputPath for (module, name), ensures its directory
// exists, and rotates any existing output file at that path: an existing
// ".old" file is removed first, then the live file (and its .log sibling)
// is renamed to the ".old" companion. A fresh call always leaves at most
// one ".old" per base name.
func Create(baseDir, toolID, module, name string) (OutputPath, error) {
	dir := modulePathDir(baseDir, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return OutputPath{}, bmerrors.Wrap(err, bmerrors.KindOther, "create output directory")
	}

	sanitized := sanitizeName(toolID, name, "out")
	op := OutputPath{ToolID: toolID, Directory: dir, BaseName: sanitized, Extension: "out"}

	if err := op.rotate(); err != nil {
		return OutputPath{}, err
	}

	return op, nil
}

// path returns the canonical file path for this OutputPath.
func (op OutputPath) path() string {
	return filepath.Join(op.Directory, op.ToolID+"."+op.BaseName+"."+op.Extension)
}

// String returns the canonical live-file path, for use as the
// --callgrind-out-file value.
func (op OutputPath) String() string {
	return op.path()
}

// OldPath returns the rotated-baseline sibling path.
func (op OutputPath) OldPath() string {
	return op.path() + ".old"
}

// ToLogOutput returns the sibling path capturing the profiler's stderr.
func (op OutputPath) ToLogOutput() string {
	return filepath.Join(op.Directory, op.ToolID+"."+op.BaseName+".log")
}

// rotate removes any pre-existing .old file, then renames the live file
// (and its log sibling, if present) to their .old companions.
func (op OutputPath) rotate() error {
	old := op.OldPath()
	if _, err := os.Stat(old); err == nil {
		if err := os.Remove(old); err != nil {
			return bmerrors.Wrap(err, bmerrors.KindOther, "remove stale .old file")
		}
	}

	live := op.path()
	if _, err := os.Stat(live); err == nil {
		if err := os.Rename(live, old); err != nil {
			return bmerrors.Wrap(err, bmerrors.KindOther, "rotate output to .old")
		}
	}

	logPath := op.ToLogOutput()
	oldLog := logPath + ".old"
	if _, err := os.Stat(oldLog); err == nil {
		_ = os.Remove(oldLog)
	}
	if _, err := os.Stat(logPath); err == nil {
		_ = os.Rename(logPath, oldLog)
	}

	return nil
}

// HasBaseline reports whether a rotated .old file exists to diff against.
func (op OutputPath) HasBaseline() bool {
	_, err := os.Stat(op.OldPath())
	return err == nil
}

// Open opens the live output file for reading.
func (op OutputPath) Open() (io.ReadCloser, error) {
	f, err := os.Open(op.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bmerrors.WrapWithDetail(err, bmerrors.KindParseError, "open output", op.path())
		}
		return nil, bmerrors.Wrap(err, bmerrors.KindParseError, "open output")
	}
	return f, nil
}

// OpenBaseline opens the rotated .old file for reading, if present.
func (op OutputPath) OpenBaseline() (io.ReadCloser, error) {
	f, err := os.Open(op.OldPath())
	if err != nil {
		return nil, err
	}
	return f, nil
}

// RealPaths enumerates every non-baseline output file sharing this tool and
// base name under Directory — i.e. "<dir>/<tool>.<name>.*" excluding
// entries ending in ".old", which are reserved for baseline comparison.
func (op OutputPath) RealPaths() ([]string, error) {
	pattern := filepath.Join(op.Directory, op.ToolID+"."+op.BaseName+".*")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, bmerrors.Wrap(err, bmerrors.KindOther, "glob output files")
	}

	var out []string
	for _, m := range matches {
		if strings.HasSuffix(m, ".old") {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
