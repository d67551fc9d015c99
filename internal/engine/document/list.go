package document

import "github.com/dshills/piecechain/internal/engine/piece"

// nilNode marks the absence of a node (list ends and the end iterator).
const nilNode = -1

// node is one slot of the piece arena.
type node struct {
	piece piece.Piece
	prev  int
	next  int
}

// pieceList is a doubly-linked list of pieces stored in an arena.
// Nodes are addressed by integer handles that stay valid until the node is
// removed. Removed slots are recycled through a free list, so handles of
// removed nodes must not be retained.
type pieceList struct {
	nodes []node
	free  []int
	head  int
	tail  int
	len   int
}

func newPieceList() pieceList {
	return pieceList{head: nilNode, tail: nilNode}
}

// alloc stores p in a free slot (or a new one) and returns its handle.
// It may grow nodes, so pointers obtained from at are invalidated.
func (l *pieceList) alloc(p piece.Piece) int {
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node{piece: p, prev: nilNode, next: nilNode}
		return h
	}
	l.nodes = append(l.nodes, node{piece: p, prev: nilNode, next: nilNode})
	return len(l.nodes) - 1
}

// insertBefore links p in front of at and returns the new handle.
// at == nilNode appends to the end of the list.
func (l *pieceList) insertBefore(at int, p piece.Piece) int {
	h := l.alloc(p)

	if at == nilNode {
		l.nodes[h].prev = l.tail
		if l.tail != nilNode {
			l.nodes[l.tail].next = h
		} else {
			l.head = h
		}
		l.tail = h
	} else {
		prev := l.nodes[at].prev
		l.nodes[h].prev = prev
		l.nodes[h].next = at
		l.nodes[at].prev = h
		if prev != nilNode {
			l.nodes[prev].next = h
		} else {
			l.head = h
		}
	}

	l.len++
	return h
}

// insertAfter links p behind at and returns the new handle.
func (l *pieceList) insertAfter(at int, p piece.Piece) int {
	return l.insertBefore(l.nodes[at].next, p)
}

// remove unlinks h, recycles its slot and returns the handle that followed it.
func (l *pieceList) remove(h int) int {
	n := l.nodes[h]

	if n.prev != nilNode {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilNode {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}

	l.nodes[h] = node{prev: nilNode, next: nilNode}
	l.free = append(l.free, h)
	l.len--
	return n.next
}

// at returns a pointer to the piece stored at h. The pointer is only valid
// until the next alloc.
func (l *pieceList) at(h int) *piece.Piece {
	return &l.nodes[h].piece
}

func (l *pieceList) next(h int) int {
	return l.nodes[h].next
}

func (l *pieceList) prev(h int) int {
	return l.nodes[h].prev
}
