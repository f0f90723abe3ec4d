// Package mcts is a generic Monte Carlo Tree Search implementation over
// discrete-action Markov Decision Processes.
//
// The engine never interprets the domain: callers describe the dynamics
// through three callbacks (NumActions, Step, RolloutPolicy) keyed by an
// opaque StateKey fingerprint, and the engine incrementally builds a search
// tree, runs UCB-guided descents with on-demand expansion, bounded rollouts
// from new leaves, and backpropagates returns into per-edge statistics.
package mcts

import "fmt"

// NodeId is a dense, stable index into the Tree's node arena.
type NodeId int

// Index returns the underlying integer index.
func (id NodeId) Index() int { return int(id) }

func (id NodeId) String() string { return fmt.Sprintf("node#%d", int(id)) }

// ActionId is a dense index into a Node's action-edge sequence. Action
// spaces are always [0, NumActions).
type ActionId int

// Index returns the underlying integer index.
func (id ActionId) Index() int { return int(id) }

func (id ActionId) String() string { return fmt.Sprintf("action#%d", int(id)) }

// StateKey is a domain-supplied 64-bit fingerprint of a decision state. It
// must be deterministic and collision-resistant across an entire run; the
// engine never interprets it, only compares it for equality and uses it as
// an OutcomeSet map key.
type StateKey uint64

// Value returns the underlying fingerprint.
func (k StateKey) Value() uint64 { return uint64(k) }

func (k StateKey) String() string { return fmt.Sprintf("state#%d", uint64(k)) }
