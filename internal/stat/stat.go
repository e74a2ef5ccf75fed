// Package stat computes filesystem statistics for an item: apparent size,
// real size with hard links counted once, size on disk, hard-link counts
// and the devices spanned.
//
// An ItemStat is computed once by New and never changes afterwards.
package stat

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/model"
	"github.com/sadopc/itemstat/internal/walker"
)

// Options configures New.
type Options struct {
	// Walk configures the traversal of Folder items.
	Walk walker.Options
	// ContinueOnError counts unreadable entries in Errors instead of
	// failing. The item itself must still be readable.
	ContinueOnError bool
}

// ItemStat is an immutable snapshot of the statistics of an item.
type ItemStat struct {
	kind model.Kind
	path string

	size       int64
	realSize   int64
	sizeOnDisk int64
	minSize    int64
	maxSize    int64

	fullHardLinks int64
	hardLinks     float64

	deviceID uint64
	devices  []uint64
	inode    uint64

	uid, gid  uint32
	userName  string
	groupName string
	perms     Permissions

	atime, mtime, ctime time.Time

	files, folders, links, errors int64
}

// New stats item. Folder items are walked recursively; File and Link
// items are read with lstat; every frame of a Sequence item is read as a
// file.
func New(ctx context.Context, item model.Item, opts Options) (*ItemStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch item.Kind() {
	case model.File, model.Link:
		return statEntry(item.Kind(), item.Path())
	case model.Folder:
		return statFolder(ctx, item.Path(), opts)
	case model.Sequence:
		return statSequence(ctx, item, opts)
	}
	return nil, &model.InvalidPathError{Path: item.Path(), Kind: item.Kind(), Err: errors.New("undefined kind")}
}

// statEntry stats a single file or link. Its share of the data is the
// size divided by the link count, so summing the stats of every name of
// an inode gives the inode once.
func statEntry(kind model.Kind, path string) (*ItemStat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, model.WrapFS("lstat", path, err)
	}

	st := &ItemStat{kind: kind, path: path}
	st.setMeta(info)

	size := info.Size()
	st.size, st.minSize, st.maxSize = size, size, size
	nlink := int64(1)
	blocks := (size + 511) / 512
	if sys, ok := walker.SysOf(info); ok {
		if sys.Nlink > 0 {
			nlink = int64(sys.Nlink)
		}
		blocks = sys.Blocks
	}
	st.fullHardLinks = nlink
	st.hardLinks = float64(nlink)
	st.realSize = size / nlink
	st.sizeOnDisk = (blocks / nlink) * 512

	if kind == model.Link {
		st.links = 1
	} else {
		st.files = 1
	}
	return st, nil
}

func statFolder(ctx context.Context, path string, opts Options) (*ItemStat, error) {
	root, info, err := walker.Root(path)
	if err != nil {
		return nil, err
	}

	st := &ItemStat{kind: model.Folder, path: path}
	st.setMeta(info)

	log := opts.Walk.Logger
	if log == nil {
		log = logger.Get()
	}

	wopts := opts.Walk
	if opts.ContinueOnError && wopts.OnError == nil {
		wopts.OnError = func(p string, err error) error {
			log.Warn("skipping unreadable entry", "path", p, "err", err)
			st.errors++
			return nil
		}
	}

	agg := NewAggregator(wopts.FollowLinks)
	for _, dev := range st.devices {
		agg.Devices().Record(dev)
	}

	err = walker.Walk(ctx, root, wopts, func(e walker.Entry) error {
		agg.Add(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	st.size = agg.Size()
	st.realSize = agg.RealSize()
	st.sizeOnDisk = agg.SizeOnDisk()
	st.minSize, st.maxSize = agg.MinSize(), agg.MaxSize()
	st.fullHardLinks = agg.FullHardLinkCount()
	st.hardLinks = float64(agg.HardLinkCount())
	st.devices = agg.Devices().Devices()
	st.files, st.folders, st.links = agg.Files(), agg.Folders(), agg.Links()

	log.Debug("folder stat done", "path", root, "files", st.files, "folders", st.folders,
		"errors", st.errors, "crosses_devices", agg.Devices().Crosses())
	return st, nil
}

// statSequence sums the stats of every frame. Owner, device and access
// time come from the first frame; permissions are the most restrictive
// of all frames, modification and change times the latest.
func statSequence(ctx context.Context, item model.Item, opts Options) (*ItemStat, error) {
	seq := item.Sequence()
	st := &ItemStat{kind: model.Sequence, path: item.Path(), perms: AllPermissions}

	var (
		devices DeviceResolver
		first   = true
	)
	for _, p := range item.FramePaths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, err := statEntry(model.File, p)
		if err != nil {
			if !opts.ContinueOnError {
				return nil, err
			}
			logger.Get().Warn("skipping unreadable frame", "path", p, "err", err)
			st.errors++
			continue
		}

		if first {
			st.deviceID = frame.deviceID
			st.inode = frame.inode
			st.uid, st.gid = frame.uid, frame.gid
			st.atime = frame.atime
			st.minSize, st.maxSize = frame.size, frame.size
			first = false
		}
		devices.Record(frame.deviceID)

		st.perms &= frame.perms
		if frame.mtime.After(st.mtime) {
			st.mtime = frame.mtime
		}
		if frame.ctime.After(st.ctime) {
			st.ctime = frame.ctime
		}

		st.size = saturatingAdd(st.size, frame.size)
		st.realSize = saturatingAdd(st.realSize, frame.realSize)
		st.sizeOnDisk = saturatingAdd(st.sizeOnDisk, frame.sizeOnDisk)
		st.fullHardLinks += frame.fullHardLinks
		if frame.size < st.minSize {
			st.minSize = frame.size
		}
		if frame.size > st.maxSize {
			st.maxSize = frame.size
		}
		st.files++
	}

	if first {
		return nil, &model.NotFoundError{Path: item.Path(), Err: fs.ErrNotExist}
	}

	if d := seq.Duration(); d > 0 {
		st.hardLinks = float64(st.fullHardLinks) / float64(d)
	}
	st.devices = devices.Devices()
	st.userName = userName(st.uid)
	st.groupName = groupName(st.gid)
	return st, nil
}

// setMeta copies the metadata of the item's own inode.
func (st *ItemStat) setMeta(info fs.FileInfo) {
	st.perms = permissionsOf(info.Mode())
	st.mtime = info.ModTime()
	st.userName, st.groupName = unknownOwner, unknownOwner
	if sys, ok := walker.SysOf(info); ok {
		st.deviceID = sys.Dev
		st.devices = []uint64{sys.Dev}
		st.inode = sys.Ino
		st.uid, st.gid = sys.Uid, sys.Gid
		st.atime, st.ctime = sys.Atime, sys.Ctime
		st.userName = userName(sys.Uid)
		st.groupName = groupName(sys.Gid)
	}
}

func (st *ItemStat) Kind() model.Kind { return st.kind }
func (st *ItemStat) Path() string     { return st.path }

// Size is the apparent size in bytes.
func (st *ItemStat) Size() int64 { return st.size }

// RealSize is the size with every inode counted once.
func (st *ItemStat) RealSize() int64 { return st.realSize }

// SizeOnDisk is the allocated size, in 512-byte blocks times 512.
func (st *ItemStat) SizeOnDisk() int64 { return st.sizeOnDisk }

func (st *ItemStat) MinSize() int64 { return st.minSize }
func (st *ItemStat) MaxSize() int64 { return st.maxSize }

// FullHardLinkCount is the number of hard-link references met. For a
// folder, the number of entries whose inode has more than one link.
func (st *ItemStat) FullHardLinkCount() int64 { return st.fullHardLinks }

// HardLinkCount is the number of distinct multiply-linked inodes for a
// folder, the link count for a file, and the average link count per frame
// for a sequence.
func (st *ItemStat) HardLinkCount() float64 { return st.hardLinks }

// DeviceID is the device holding the item itself.
func (st *ItemStat) DeviceID() uint64 { return st.deviceID }

// Devices lists every device spanned, in ascending order.
func (st *ItemStat) Devices() []uint64 {
	out := make([]uint64, len(st.devices))
	copy(out, st.devices)
	return out
}

// CrossesDevices reports whether the item spans more than one device.
func (st *ItemStat) CrossesDevices() bool { return len(st.devices) > 1 }

func (st *ItemStat) Inode() uint64            { return st.inode }
func (st *ItemStat) UserID() uint32           { return st.uid }
func (st *ItemStat) GroupID() uint32          { return st.gid }
func (st *ItemStat) UserName() string         { return st.userName }
func (st *ItemStat) GroupName() string        { return st.groupName }
func (st *ItemStat) Permissions() Permissions { return st.perms }
func (st *ItemStat) AccessTime() time.Time    { return st.atime }
func (st *ItemStat) ModTime() time.Time       { return st.mtime }
func (st *ItemStat) ChangeTime() time.Time    { return st.ctime }

// Files, Folders and Links count the entries accounted for.
func (st *ItemStat) Files() int64   { return st.files }
func (st *ItemStat) Folders() int64 { return st.folders }
func (st *ItemStat) Links() int64   { return st.links }

// Errors counts entries skipped with ContinueOnError.
func (st *ItemStat) Errors() int64 { return st.errors }
