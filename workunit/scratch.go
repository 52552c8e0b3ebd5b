package workunit

import (
	"path"

	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/def"
	"github.com/ryneli/ceph-qa-suite/orchestra"
)

/*
	Scratch records one role's provisioned scratch mountpoint.

	Created is carried from provisioning to teardown deliberately:
	whether the mountpoint is ours to remove is decided exactly once,
	when we either found it or made it, never re-inferred later.
*/
type Scratch struct {
	Mountpoint string
	Created    bool
}

/*
	MakeScratchDir ensures a role's scratch working directory exists.

	The mountpoint may not exist at all if no filesystem task mounted
	one first; the stat probe failing is the *expected* discriminator
	between the two provisioning branches, not a fault.  A fresh
	mountpoint gets a plain mkdir for the working subdirectory.  A
	pre-existing one may be owned by another process, so the
	subdirectory goes in with a privileged ownership-aware install --
	behind a cd, which makes the command fail if the mountpoint is
	gone; a bare `install -d` would silently build the wrong tree.
*/
func (h *Harness) MakeScratchDir(role def.Role, subdir string) Scratch {
	id := role.ClientID()
	remote := h.cluster.Resolve(role)
	mnt := h.clientMountpoint(role)
	log := h.log.New("role", string(role))

	created := false
	try.Do(func() {
		remote.Run(orchestra.RunOpts{
			Log:  log,
			Args: []interface{}{"stat", "--", mnt},
		})
		log.Info("did not need to create dir", "dir", mnt)
	}).Catch(orchestra.CommandFailedError, func(_ *errors.Error) {
		remote.Run(orchestra.RunOpts{
			Log:  log,
			Args: []interface{}{"mkdir", "--", mnt},
		})
		log.Info("created dir", "dir", mnt)
		created = true
	}).Done()

	if subdir == "" {
		subdir = "client." + id
	}
	if created {
		remote.Run(orchestra.RunOpts{
			Log: log,
			Args: []interface{}{
				"cd", "--", mnt,
				orchestra.Raw("&&"),
				"mkdir", "--", subdir,
			},
		})
	} else {
		remote.Run(orchestra.RunOpts{
			Log: log,
			Args: []interface{}{
				"cd", "--", mnt,
				orchestra.Raw("&&"),
				"sudo", "install", "-d", "-m", "0755",
				"--owner=" + remote.User(),
				"--", subdir,
			},
		})
	}

	return Scratch{Mountpoint: mnt, Created: created}
}

/*
	DeleteScratchDir releases what MakeScratchDir provisioned: the
	inner per-client directory always (privileged, recursive), and the
	mountpoint itself only when we created it (unprivileged rmdir --
	it must be empty by then, and anything still in it is a bug we
	want to hear about).
*/
func (h *Harness) DeleteScratchDir(role def.Role, scratch Scratch) {
	_, _, id := role.Split()
	remote := h.cluster.Resolve(role)
	client := path.Join(scratch.Mountpoint, "client."+id)
	log := h.log.New("role", string(role))

	remote.Run(orchestra.RunOpts{
		Log:  log,
		Args: []interface{}{"sudo", "rm", "-rf", "--", client},
	})
	log.Info("deleted dir", "dir", client)

	if scratch.Created {
		remote.Run(orchestra.RunOpts{
			Log:  log,
			Args: []interface{}{"rmdir", "--", scratch.Mountpoint},
		})
		log.Info("deleted artificial mount point", "dir", scratch.Mountpoint)
	}
}
