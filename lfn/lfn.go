/*
	Long-filename object verification.

	Synthesizes objects with names of exact, configurable lengths
	(embedding a prefix and a numeric suffix, padded with filler) and
	walks every one through a strict create, verify, delete,
	verify-absent sequence against a pool.  No concurrency, no retries:
	this is a correctness probe for name encoding, and any deviation
	is a finding.
*/
package lfn

import (
	"strconv"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/spacemonkeygo/errors"

	"github.com/ryneli/ceph-qa-suite/def"
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("LFNError")

/*
	PoolStore is the storage surface the check runs against: trivial
	per-object put/get/remove in a pool, namespace-aware.  Errors are
	returned, not panicked -- the check *wants* to observe failures
	(a get after delete must fail).
*/
type PoolStore interface {
	Put(pool, name, namespace, src string) error
	Get(pool, name, namespace string) error
	Remove(pool, name, namespace string) error
}

/*
	ObjectName builds the name for one object: prefix, then "a" filler,
	then the decimal index, totalling exactly length characters.

	The namespace's length counts against the budget only when the
	namespace is non-empty, compared by string equality.
*/
func ObjectName(prefix, namespace string, length, index int) string {
	nslen := 0
	if namespace != "" {
		nslen = len(namespace)
	}
	numstr := strconv.Itoa(index)
	filler := length - nslen - len(prefix) - len(numstr)
	if filler < 0 {
		panic(Error.New(
			"name length %d cannot fit prefix %q, namespace %q, and index %d",
			length, prefix, namespace, index))
	}
	return prefix + strings.Repeat("a", filler) + numstr
}

type object struct {
	name      string
	namespace string
}

/*
	Check runs the full sequence.  Raises on the first deviation:
	a failed put or get, a failed delete, or an object still
	retrievable after deletion.
*/
func Check(store PoolStore, cfg def.LFNConfig, log log15.Logger) {
	cfg.Rectify()
	if log == nil {
		log = log15.New()
	}

	var objects []object
	for _, length := range cfg.NameLength {
		for _, ns := range cfg.Namespace {
			for i := 0; i < cfg.NumObjects; i++ {
				objects = append(objects, object{
					name:      ObjectName(cfg.Prefix, ns, length, i),
					namespace: ns,
				})
			}
		}
	}

	log.Info("creating objects", "pool", cfg.Pool, "count", len(objects))
	for _, o := range objects {
		if err := store.Put(cfg.Pool, o.name, o.namespace, "/etc/resolv.conf"); err != nil {
			panic(Error.New("put of %q failed: %s", o.name, errors.GetMessage(err)))
		}
	}

	log.Info("verifying objects")
	for _, o := range objects {
		if err := store.Get(cfg.Pool, o.name, o.namespace); err != nil {
			panic(Error.New("get of %q failed: %s", o.name, errors.GetMessage(err)))
		}
	}

	log.Info("deleting objects")
	for _, o := range objects {
		if err := store.Remove(cfg.Pool, o.name, o.namespace); err != nil {
			panic(Error.New("remove of %q failed: %s", o.name, errors.GetMessage(err)))
		}
	}

	log.Info("verifying objects absent")
	for _, o := range objects {
		if err := store.Get(cfg.Pool, o.name, o.namespace); err == nil {
			panic(Error.New("object %q still retrievable after delete", o.name))
		}
	}
}
