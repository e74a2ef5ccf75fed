//go:build !linux && !openbsd && !dragonfly && !solaris && !illumos && !darwin && !freebsd && !netbsd

package walker

import "io/fs"

// sysOf on platforms without a usable Stat_t reports nothing. Inode and
// hard-link detection is not supported there.
func sysOf(info fs.FileInfo) (Sys, bool) {
	return Sys{}, false
}
