package report

import (
	"time"

	"github.com/sadopc/itemstat/internal/stat"
)

// Summary is the serialised form of an ItemStat.
type Summary struct {
	Path              string    `json:"path"`
	Kind              string    `json:"kind"`
	Size              int64     `json:"size"`
	RealSize          int64     `json:"real_size"`
	SizeOnDisk        int64     `json:"size_on_disk"`
	MinSize           int64     `json:"min_size"`
	MaxSize           int64     `json:"max_size"`
	FullHardLinkCount int64     `json:"full_hard_links"`
	HardLinkCount     float64   `json:"hard_links"`
	DeviceID          uint64    `json:"device"`
	Devices           []uint64  `json:"devices,omitempty"`
	CrossesDevices    bool      `json:"crosses_devices,omitempty"`
	Inode             uint64    `json:"inode,omitempty"`
	UserID            uint32    `json:"uid"`
	GroupID           uint32    `json:"gid"`
	User              string    `json:"user"`
	Group             string    `json:"group"`
	Permissions       string    `json:"permissions"`
	AccessTime        time.Time `json:"atime"`
	ModTime           time.Time `json:"mtime"`
	ChangeTime        time.Time `json:"ctime"`
	Files             int64     `json:"files"`
	Folders           int64     `json:"folders"`
	Links             int64     `json:"links"`
	Errors            int64     `json:"errors,omitempty"`
}

// NewSummary copies the values of st.
func NewSummary(st *stat.ItemStat) Summary {
	return Summary{
		Path:              st.Path(),
		Kind:              st.Kind().String(),
		Size:              st.Size(),
		RealSize:          st.RealSize(),
		SizeOnDisk:        st.SizeOnDisk(),
		MinSize:           st.MinSize(),
		MaxSize:           st.MaxSize(),
		FullHardLinkCount: st.FullHardLinkCount(),
		HardLinkCount:     st.HardLinkCount(),
		DeviceID:          st.DeviceID(),
		Devices:           st.Devices(),
		CrossesDevices:    st.CrossesDevices(),
		Inode:             st.Inode(),
		UserID:            st.UserID(),
		GroupID:           st.GroupID(),
		User:              st.UserName(),
		Group:             st.GroupName(),
		Permissions:       st.Permissions().String(),
		AccessTime:        st.AccessTime(),
		ModTime:           st.ModTime(),
		ChangeTime:        st.ChangeTime(),
		Files:             st.Files(),
		Folders:           st.Folders(),
		Links:             st.Links(),
		Errors:            st.Errors(),
	}
}
