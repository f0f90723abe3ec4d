// Package telemetry renders MCTS run/iteration events for operators and
// log aggregators: a compact key=value line for humans tailing a terminal,
// and a tagged JSON line for anything ingesting structured logs.
package telemetry

import (
	"encoding/json"
	"fmt"
	"strings"

	"k8s.io/klog/v2"
)

// Event is one point-in-time telemetry record. The Kind discriminates
// which of the Run*/Iteration* fields are meaningful; unused fields are
// simply zero.
type Event struct {
	Kind string `json:"event"`

	Iterations int     `json:"iterations,omitempty"`
	C          float64 `json:"exploration_constant,omitempty"`
	ReturnType string  `json:"return_type,omitempty"`

	Completed int     `json:"completed,omitempty"`
	Sum       float64 `json:"sum,omitempty"`
	Avg       float64 `json:"avg,omitempty"`

	Index         int     `json:"index,omitempty"`
	LeafId        int     `json:"leaf_id,omitempty"`
	LeafIsNew     bool    `json:"leaf_is_new,omitempty"`
	PathLen       int     `json:"path_len,omitempty"`
	RolloutReturn float64 `json:"rollout_return,omitempty"`
	TotalReturn   float64 `json:"total_return,omitempty"`
}

// RunStarted builds the event emitted once, before the first iteration of
// a run.
func RunStarted(iterations int, c float64, returnType string) Event {
	return Event{Kind: "run_started", Iterations: iterations, C: c, ReturnType: returnType}
}

// IterationCompleted builds the event emitted after each iteration.
func IterationCompleted(index, leafId int, leafIsNew bool, pathLen int, rolloutReturn, totalReturn float64) Event {
	return Event{
		Kind:          "iteration_completed",
		Index:         index,
		LeafId:        leafId,
		LeafIsNew:     leafIsNew,
		PathLen:       pathLen,
		RolloutReturn: rolloutReturn,
		TotalReturn:   totalReturn,
	}
}

// RunCompleted builds the event emitted once, after the last iteration of
// a run (or early exit).
func RunCompleted(completed int, sum, avg float64) Event {
	return Event{Kind: "run_completed", Completed: completed, Sum: sum, Avg: avg}
}

// Text renders the event as a compact, single-line key=value string.
func (e Event) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "event=%s", e.Kind)
	switch e.Kind {
	case "run_started":
		fmt.Fprintf(&b, " iterations=%d c=%.6f return_type=%s", e.Iterations, e.C, e.ReturnType)
	case "iteration_completed":
		fmt.Fprintf(&b, " index=%d leaf=%d leaf_is_new=%t path_len=%d rollout_return=%.6f total_return=%.6f",
			e.Index, e.LeafId, e.LeafIsNew, e.PathLen, e.RolloutReturn, e.TotalReturn)
	case "run_completed":
		fmt.Fprintf(&b, " completed=%d sum=%.6f avg=%.6f", e.Completed, e.Sum, e.Avg)
	}
	return b.String()
}

// JSON renders the event as a single JSON line. Errors are not expected
// since Event contains only plain scalar fields; they are folded into the
// returned string rather than forcing every call site to handle them.
func (e Event) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"event":%q,"marshal_error":%q}`, e.Kind, err.Error())
	}
	return string(data)
}

// Sink receives rendered telemetry events. Implementations decide their
// own formatting (Text vs JSON) and destination.
type Sink interface {
	Emit(e Event)
}

// TextFunc adapts any func(string) (e.g. klog.Info) into a Sink using
// Event.Text.
type TextFunc func(string)

func (f TextFunc) Emit(e Event) { f(e.Text()) }

// JSONFunc adapts any func(string) into a Sink using Event.JSON.
type JSONFunc func(string)

func (f JSONFunc) Emit(e Event) { f(e.JSON()) }

// KlogTextSink emits events as klog V(level) text lines. iteration_completed
// is the noisiest event and gated one verbosity level above run boundaries.
type KlogTextSink struct {
	Level klog.Level
}

func (s KlogTextSink) Emit(e Event) {
	level := s.Level
	if e.Kind == "iteration_completed" {
		level++
	}
	if klog.V(level).Enabled() {
		klog.InfoDepth(1, e.Text())
	}
}

// KlogJSONSink emits events as klog V(level) JSON lines, for log pipelines
// that parse structured records instead of key=value text.
type KlogJSONSink struct {
	Level klog.Level
}

func (s KlogJSONSink) Emit(e Event) {
	level := s.Level
	if e.Kind == "iteration_completed" {
		level++
	}
	if klog.V(level).Enabled() {
		klog.InfoDepth(1, e.JSON())
	}
}
