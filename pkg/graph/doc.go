// Package graph defines the board model for vlisp.
// A Graph holds the placed node frames and the edges wired between their
// connectors. It pairs connector clicks into edges, flags edges whose
// geometry went stale when a node moved, and round-trips through snapshots
// for the host persistence channel.
package graph
