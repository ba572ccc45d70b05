// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package reranking

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// maxPeers limits peer allocations per pool.
const maxPeers = 100

// CrossCheck rewards items that also pair well with the head of every other
// pool.
type CrossCheck struct {
	// Peers is the number of top items taken from each other pool.
	Peers int

	// OwnWeight is the share of an item's own score in its display score.
	OwnWeight float64
}

// NewCrossCheck creates a cross-check pass. Peers is clamped to
// [1, maxPeers] and ownWeight to [0, 1].
func NewCrossCheck(peers int, ownWeight float64) CrossCheck {
	if peers < 1 {
		peers = 1
	}
	if peers > maxPeers {
		peers = maxPeers
	}
	if ownWeight < 0 {
		ownWeight = 0
	}
	if ownWeight > 1 {
		ownWeight = 1
	}
	return CrossCheck{Peers: peers, OwnWeight: ownWeight}
}

// Name returns the reranker identifier.
func (CrossCheck) Name() string {
	return "cross_check"
}

// Scored is a pooled item with its own and display scores.
type Scored[T any] struct {
	Item    T
	Own     float64
	Display float64
}

// Rerank computes display scores for every pool and returns the pools
// sorted by display score descending. Ties keep the order given by tie
// (negative when a ranks first), then the input order.
//
// own returns an item's score against the base. pair returns the score of
// an item acting as the base against a peer. Pools are expected in their
// current ranked order, since peers are taken from their heads.
func Rerank[T any](cc CrossCheck, pools [][]T, own func(T) float64, pair func(item, peer T) float64, tie func(a, b T) int) [][]Scored[T] {
	heads := make([][]T, len(pools))
	for i, pool := range pools {
		n := min(cc.Peers, len(pool))
		heads[i] = pool[:n]
	}

	out := make([][]Scored[T], len(pools))
	for i, pool := range pools {
		scored := make([]Scored[T], len(pool))
		for j, item := range pool {
			s := own(item)
			scored[j] = Scored[T]{Item: item, Own: s, Display: cc.blend(s, peerScores(heads, i, item, pair))}
		}

		sort.SliceStable(scored, func(a, b int) bool {
			if scored[a].Display != scored[b].Display {
				return scored[a].Display > scored[b].Display
			}
			if tie != nil {
				return tie(scored[a].Item, scored[b].Item) < 0
			}
			return false
		})
		out[i] = scored
	}
	return out
}

// peerScores scores item against the heads of every pool except its own.
func peerScores[T any](heads [][]T, self int, item T, pair func(item, peer T) float64) []float64 {
	var scores []float64
	for k, head := range heads {
		if k == self {
			continue
		}
		for _, peer := range head {
			scores = append(scores, pair(item, peer))
		}
	}
	return scores
}

func (cc CrossCheck) blend(own float64, peers []float64) float64 {
	if len(peers) == 0 {
		return own
	}
	return cc.OwnWeight*own + (1-cc.OwnWeight)*stat.Mean(peers, nil)
}
