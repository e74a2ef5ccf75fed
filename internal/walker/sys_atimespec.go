//go:build darwin || freebsd || netbsd

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
		Atime:  time.Unix(int64(st.Atimespec.Sec), int64(st.Atimespec.Nsec)),
		Ctime:  time.Unix(int64(st.Ctimespec.Sec), int64(st.Ctimespec.Nsec)),
	}, true
}
