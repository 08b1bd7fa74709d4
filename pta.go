package earlyrepair

import "golang.org/x/exp/slices"

// NodeID addresses a node in a PTA's node arena.
type NodeID int32

// ptaNode is one node of a prefix-tree acceptor. Nodes live in a flat
// arena (see PTA.nodes); children are addressed by NodeID rather than
// pointer so that the partition built during RPNI merging can remain a
// plain slice (see rpni.go).
type ptaNode struct {
	accept bool
	next   map[byte]NodeID
	parent NodeID
	via    byte
}

// PTA is a prefix-tree acceptor built from a set of positive samples.
// Node 0 is always the root. There is exactly one node per distinct
// prefix of any positive sample added via AddPath, and a node is
// accepting iff some positive sample equals that prefix (§3, §4.1).
type PTA struct {
	nodes    []ptaNode
	alphabet map[byte]struct{}
}

// NewPTA returns an empty PTA with only a non-accepting root.
func NewPTA() *PTA {
	return &PTA{
		nodes:    []ptaNode{{next: map[byte]NodeID{}, parent: -1}},
		alphabet: map[byte]struct{}{},
	}
}

// AddPath inserts a positive word into the tree, creating any missing
// nodes along the way, marks the terminal node accepting, and returns
// its id. A negative word only has its symbols folded into the
// alphabet; its structure is not recorded and AddPath returns -1
// (§4.1).
func (t *PTA) AddPath(word string, isPositive bool) NodeID {
	if !isPositive {
		t.AddAlphabet(word)
		return -1
	}
	s := NodeID(0)
	for i := 0; i < len(word); i++ {
		a := word[i]
		t.alphabet[a] = struct{}{}
		next, ok := t.nodes[s].next[a]
		if !ok {
			next = NodeID(len(t.nodes))
			t.nodes = append(t.nodes, ptaNode{
				next:   map[byte]NodeID{},
				parent: s,
				via:    a,
			})
			t.nodes[s].next[a] = next
		}
		s = next
	}
	t.nodes[s].accept = true
	return s
}

// AddAlphabet folds every byte of word into the alphabet without
// structurally inserting it into the tree. Used for negative samples,
// whose symbols must still be known to RPNI's consistency check even
// though the samples themselves are never added as paths (§4.2 step 1).
func (t *PTA) AddAlphabet(word string) {
	for i := 0; i < len(word); i++ {
		t.alphabet[word[i]] = struct{}{}
	}
}

// NumNodes returns the number of nodes currently in the arena.
func (t *PTA) NumNodes() int { return len(t.nodes) }

// Alphabet returns the accumulated symbol alphabet in ascending order.
func (t *PTA) Alphabet() []byte {
	out := make([]byte, 0, len(t.alphabet))
	for a := range t.alphabet {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
