//go:build linux || openbsd || dragonfly || solaris || illumos

package walker

import (
	"io/fs"
	"syscall"
	"time"
)

func sysOf(info fs.FileInfo) (Sys, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Sys{}, false
	}
	return Sys{
		Dev:    uint64(st.Dev),
		Ino:    uint64(st.Ino),
		Nlink:  uint64(st.Nlink),
		Blocks: int64(st.Blocks),
		Uid:    st.Uid,
		Gid:    st.Gid,
		Atime:  time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)),
		Ctime:  time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)),
	}, true
}
