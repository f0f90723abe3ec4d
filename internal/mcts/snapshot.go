package mcts

import "github.com/janpfeifer/weavetree/internal/generics"

// TreeSnapshot is a fully decoded, JSON-stable view of a Tree, suitable for
// persistence or cross-process inspection. It is not a live view: mutating
// the Tree after taking a snapshot has no effect on it.
type TreeSnapshot struct {
	SchemaVersion uint32         `json:"schema_version"`
	RootNodeId    int            `json:"root_node_id"`
	NodeCount     int            `json:"node_count"`
	Nodes         []NodeSnapshot `json:"nodes"`
}

// NodeSnapshot mirrors one Node.
type NodeSnapshot struct {
	Id             int                  `json:"id"`
	StateKey       uint64               `json:"state_key"`
	Depth          uint64               `json:"depth"`
	ParentNodeId   *int                 `json:"parent_node_id,omitempty"`
	ParentActionId *int                 `json:"parent_action_id,omitempty"`
	IsTerminal     bool                 `json:"is_terminal"`
	ExpansionState string               `json:"expansion_state"`
	Edges          []ActionEdgeSnapshot `json:"edges"`
}

// ActionEdgeSnapshot mirrors one ActionEdge.
type ActionEdgeSnapshot struct {
	ActionId int               `json:"action_id"`
	Visits   uint64            `json:"visits"`
	ValueSum float64           `json:"value_sum"`
	Outcomes []OutcomeSnapshot `json:"outcomes"`
}

// OutcomeSnapshot mirrors one resolved chance outcome.
type OutcomeSnapshot struct {
	NextStateKey uint64 `json:"next_state_key"`
	ChildNodeId  int    `json:"child_node_id"`
	Count        uint64 `json:"count"`
}

// schemaVersion is bumped whenever the snapshot's JSON shape changes in a
// backward-incompatible way.
const schemaVersion uint32 = 1

// Snapshot walks the whole arena and produces a deep, JSON-ready copy of
// the tree's current state.
func (t *Tree) Snapshot() TreeSnapshot {
	snap := TreeSnapshot{
		SchemaVersion: schemaVersion,
		RootNodeId:    t.RootId().Index(),
		NodeCount:     t.NodeCount(),
		Nodes:         make([]NodeSnapshot, 0, t.NodeCount()),
	}

	for i := 0; i < t.NodeCount(); i++ {
		node := t.nodes.get(NodeId(i))
		ns := NodeSnapshot{
			Id:             i,
			StateKey:       node.StateKey().Value(),
			Depth:          node.Depth(),
			IsTerminal:     node.IsTerminal(),
			ExpansionState: node.ExpansionState().String(),
			Edges:          generics.SliceMap(node.Edges(), snapshotEdge),
		}
		if p := node.Parent(); p != nil {
			parentNode := p.Node.Index()
			parentAction := p.Action.Index()
			ns.ParentNodeId = &parentNode
			ns.ParentActionId = &parentAction
		}

		snap.Nodes = append(snap.Nodes, ns)
	}

	return snap
}

func snapshotEdge(edge ActionEdge) ActionEdgeSnapshot {
	es := ActionEdgeSnapshot{
		ActionId: edge.Action().Index(),
		Visits:   edge.Visits(),
		ValueSum: edge.ValueSum(),
	}
	edge.ForEachOutcome(func(nextStateKey StateKey, child NodeId, count uint64) {
		es.Outcomes = append(es.Outcomes, OutcomeSnapshot{
			NextStateKey: nextStateKey.Value(),
			ChildNodeId:  child.Index(),
			Count:        count,
		})
	})
	return es
}
