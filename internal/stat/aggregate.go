package stat

import (
	"io/fs"
	"sort"

	"github.com/sadopc/itemstat/internal/walker"
)

type inodeKey struct {
	dev uint64
	ino uint64
}

// Aggregator accumulates sizes and hard-link bookkeeping over walk
// entries. Directory entries only count as folders; their own size is
// not part of the totals.
type Aggregator struct {
	size       int64
	realSize   int64
	sizeOnDisk int64
	minSize    int64
	maxSize    int64
	sized      bool

	fullHardLinks int64
	hardLinks     int64

	// trackAll dedups every inode, not only multiply-linked ones. Needed
	// when links are followed, since a link and its target then share an
	// inode whose link count is 1.
	trackAll bool
	seen     map[inodeKey]bool

	files, folders, links int64

	devices DeviceResolver
}

// NewAggregator returns an empty aggregator. followLinks must match the
// walk options.
func NewAggregator(followLinks bool) *Aggregator {
	return &Aggregator{
		trackAll: followLinks,
		seen:     make(map[inodeKey]bool),
	}
}

// Add accounts for one walk entry.
func (a *Aggregator) Add(e walker.Entry) {
	sys, hasSys := walker.SysOf(e.Info)
	if hasSys {
		a.devices.Record(sys.Dev)
	}

	if e.IsDir() {
		a.folders++
		return
	}
	if e.Info.Mode()&fs.ModeSymlink != 0 {
		a.links++
	} else {
		a.files++
	}

	size := e.Info.Size()
	a.size = saturatingAdd(a.size, size)
	if !a.sized || size < a.minSize {
		a.minSize = size
	}
	if !a.sized || size > a.maxSize {
		a.maxSize = size
	}
	a.sized = true

	if !hasSys {
		a.realSize = saturatingAdd(a.realSize, size)
		a.sizeOnDisk = saturatingAdd(a.sizeOnDisk, walker.DiskUsage(e.Info))
		return
	}

	multi := sys.Nlink > 1
	if multi {
		a.fullHardLinks++
	}
	if multi || a.trackAll {
		key := inodeKey{dev: sys.Dev, ino: sys.Ino}
		if a.seen[key] {
			return
		}
		a.seen[key] = true
		if multi {
			a.hardLinks++
		}
	}

	a.realSize = saturatingAdd(a.realSize, size)
	a.sizeOnDisk = saturatingAdd(a.sizeOnDisk, walker.DiskUsage(e.Info))
}

func (a *Aggregator) Size() int64              { return a.size }
func (a *Aggregator) RealSize() int64          { return a.realSize }
func (a *Aggregator) SizeOnDisk() int64        { return a.sizeOnDisk }
func (a *Aggregator) FullHardLinkCount() int64 { return a.fullHardLinks }
func (a *Aggregator) HardLinkCount() int64     { return a.hardLinks }
func (a *Aggregator) Devices() *DeviceResolver { return &a.devices }
func (a *Aggregator) MinSize() int64           { return a.minSize }
func (a *Aggregator) MaxSize() int64           { return a.maxSize }
func (a *Aggregator) Files() int64             { return a.files }
func (a *Aggregator) Folders() int64           { return a.folders }
func (a *Aggregator) Links() int64             { return a.links }

// DeviceResolver records the distinct devices seen during a walk.
type DeviceResolver struct {
	set map[uint64]struct{}
}

// Record adds a device id.
func (d *DeviceResolver) Record(dev uint64) {
	if d.set == nil {
		d.set = make(map[uint64]struct{})
	}
	d.set[dev] = struct{}{}
}

// Devices returns the recorded ids in ascending order.
func (d *DeviceResolver) Devices() []uint64 {
	out := make([]uint64, 0, len(d.set))
	for dev := range d.set {
		out = append(out, dev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Crosses reports whether more than one device was seen.
func (d *DeviceResolver) Crosses() bool { return len(d.set) > 1 }

const (
	maxInt64 = int64(^uint64(0) >> 1)
	minInt64 = -maxInt64 - 1
)

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > maxInt64-b {
		return maxInt64
	}
	if b < 0 && a < minInt64-b {
		return minInt64
	}
	return a + b
}
