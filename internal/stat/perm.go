package stat

import "io/fs"

// Permissions holds the nine rwx bits of a file mode.
type Permissions fs.FileMode

// AllPermissions has every bit set. It is the neutral element when
// intersecting the permissions of several files.
const AllPermissions Permissions = 0o777

func permissionsOf(mode fs.FileMode) Permissions { return Permissions(mode.Perm()) }

func (p Permissions) OwnerCanRead() bool    { return p&0o400 != 0 }
func (p Permissions) OwnerCanWrite() bool   { return p&0o200 != 0 }
func (p Permissions) OwnerCanExecute() bool { return p&0o100 != 0 }
func (p Permissions) GroupCanRead() bool    { return p&0o040 != 0 }
func (p Permissions) GroupCanWrite() bool   { return p&0o020 != 0 }
func (p Permissions) GroupCanExecute() bool { return p&0o010 != 0 }
func (p Permissions) OtherCanRead() bool    { return p&0o004 != 0 }
func (p Permissions) OtherCanWrite() bool   { return p&0o002 != 0 }
func (p Permissions) OtherCanExecute() bool { return p&0o001 != 0 }

// String renders the bits as "rwxr-x---".
func (p Permissions) String() string {
	return fs.FileMode(p).Perm().String()[1:]
}
