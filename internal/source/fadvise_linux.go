//go:build linux

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// advise tells the kernel every worker reads its part of f front to back.
func advise(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_WILLNEED)
}
