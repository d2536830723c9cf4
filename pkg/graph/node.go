package graph

// NodeID identifies a placed node frame. IDs are assigned sequentially from 0
// in placement order and never reused.
type NodeID int

// Kind tags which node-kind widget a frame represents. The graph stores and
// relays it without interpreting it.
type Kind string

// Position is a location in editor-canvas coordinates.
type Position struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// NodeFrame is a placed instance of a node kind.
type NodeFrame struct {
	ID       NodeID            `json:"id"`
	Kind     Kind              `json:"kind"`
	Position Position          `json:"position"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// clone returns a copy of the frame that shares no mutable state.
func (n NodeFrame) clone() NodeFrame {
	if n.Fields != nil {
		fields := make(map[string]string, len(n.Fields))
		for k, v := range n.Fields {
			fields[k] = v
		}
		n.Fields = fields
	}
	return n
}
