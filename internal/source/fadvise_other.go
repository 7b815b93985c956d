//go:build !linux

package source

import "os"

func advise(*os.File) {}
