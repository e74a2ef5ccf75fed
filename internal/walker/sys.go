package walker

import (
	"io/fs"
	"time"
)

// Sys holds the platform metadata of a file that fs.FileInfo does not
// expose.
type Sys struct {
	Dev    uint64
	Ino    uint64
	Nlink  uint64
	Blocks int64 // 512-byte blocks
	Uid    uint32
	Gid    uint32
	Atime  time.Time
	Ctime  time.Time
}

// SysOf extracts platform metadata from info. It returns false on
// platforms without a stat structure, where only the portable fields of
// fs.FileInfo are meaningful.
func SysOf(info fs.FileInfo) (Sys, bool) {
	if info == nil {
		return Sys{}, false
	}
	return sysOf(info)
}

// DiskUsage returns the allocated size of a file, falling back to its
// apparent size when block counts are unavailable.
func DiskUsage(info fs.FileInfo) int64 {
	if s, ok := SysOf(info); ok {
		return s.Blocks * 512
	}
	return info.Size()
}

// inodeKey identifies a file across filesystems. Inode numbers alone
// collide between devices.
type inodeKey struct {
	dev uint64
	ino uint64
}
