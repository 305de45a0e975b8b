package lfsio

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"github.com/vorteil/levelfs/pkg/lfs2"
)

// ChainIterator is a pull-based, lazy walk over a cluster chain. It
// applies the MaxChainLength cycle guard internally, so a malformed
// image with a self-referential successor cannot hang a caller that
// only pulls a few clusters before giving up.
type ChainIterator struct {
	resolver *Resolver
	current  uint64
	started  bool
	done     bool
	count    int
}

// NewChainIterator begins a lazy walk from start.
func NewChainIterator(resolver *Resolver, start uint64) *ChainIterator {
	return &ChainIterator{resolver: resolver, current: start}
}

// Next returns the next cluster in the chain, or ok == false once the
// chain has ended (sentinel reached or the length guard tripped).
func (it *ChainIterator) Next() (cluster uint64, ok bool, err error) {
	if it.done {
		return 0, false, nil
	}

	if !it.started {
		it.started = true
		if lfs2.IsSentinel(it.current) {
			it.done = true
			return 0, false, nil
		}
		it.count = 1
		return it.current, true, nil
	}

	if it.count >= lfs2.MaxChainLength {
		it.done = true
		return 0, false, nil
	}

	lab, err := it.resolver.Resolve(it.current)
	if err != nil {
		it.done = true
		return 0, false, err
	}

	if lfs2.IsSentinel(lab.NextCluster) {
		it.done = true
		return 0, false, nil
	}

	it.current = lab.NextCluster
	it.count++
	return it.current, true, nil
}

// Chain materializes the full, ordered cluster sequence for a chain
// starting at start, per spec.md §4.4. The sequence is empty if start is
// itself a sentinel, and bounded to MaxChainLength clusters regardless of
// how the image is constructed.
func Chain(resolver *Resolver, start uint64) ([]uint64, error) {
	it := NewChainIterator(resolver, start)

	var out []uint64
	for {
		c, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, c)
	}

	return out, nil
}
