package lfn

import (
	"github.com/inconshreveable/log15"
	"github.com/spacemonkeygo/errors"
	"github.com/spacemonkeygo/errors/try"

	"github.com/ryneli/ceph-qa-suite/orchestra"
)

var _ PoolStore = &RadosStore{}

/*
	RadosStore is a PoolStore that shells out to the `rados` tool on a
	remote.  Command failures come back as errors rather than panics,
	because the check's verify-absent phase depends on observing them.
*/
type RadosStore struct {
	Remote orchestra.Remote
	Log    log15.Logger
}

func (s *RadosStore) Put(pool, name, namespace, src string) error {
	return s.do(pool, namespace, "put", name, src)
}

func (s *RadosStore) Get(pool, name, namespace string) error {
	return s.do(pool, namespace, "get", name, "/dev/null")
}

func (s *RadosStore) Remove(pool, name, namespace string) error {
	return s.do(pool, namespace, "rm", name)
}

func (s *RadosStore) do(pool, namespace, op string, operands ...string) error {
	args := []interface{}{"rados", "-p", pool}
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}
	args = append(args, op)
	for _, operand := range operands {
		args = append(args, operand)
	}

	var failure error
	try.Do(func() {
		s.Remote.Run(orchestra.RunOpts{Log: s.Log, Args: args})
	}).Catch(orchestra.CommandFailedError, func(err *errors.Error) {
		failure = err
	}).Done()
	return failure
}
