//go:build linux

package callgrind

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// hostArch returns the kernel-reported machine architecture (e.g.
// "x86_64"), used to build the setarch wrapper's argument.
func hostArch() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return cstring(uts.Machine[:]), nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// aslrWrapper returns the argv prefix that disables ASLR for the child
// process on this platform.
func aslrWrapper(arch string) []string {
	return []string{"setarch", arch, "-R"}
}

const supportsASLRSuppression = true
