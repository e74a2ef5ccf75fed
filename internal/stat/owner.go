package stat

import (
	"os/user"
	"strconv"
	"sync"
)

const unknownOwner = "unknown"

// Owner lookups hit the user database; names are cached per process.
var (
	ownerMu    sync.Mutex
	userNames  = map[uint32]string{}
	groupNames = map[uint32]string{}
)

func userName(uid uint32) string {
	ownerMu.Lock()
	defer ownerMu.Unlock()

	if name, ok := userNames[uid]; ok {
		return name
	}
	name := unknownOwner
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil && u.Username != "" {
		name = u.Username
	}
	userNames[uid] = name
	return name
}

func groupName(gid uint32) string {
	ownerMu.Lock()
	defer ownerMu.Unlock()

	if name, ok := groupNames[gid]; ok {
		return name
	}
	name := unknownOwner
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil && g.Name != "" {
		name = g.Name
	}
	groupNames[gid] = name
	return name
}
