package earlyrepair

import (
	"github.com/emirpasic/gods/queue/linkedlistqueue"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// RPNI is a passive blue-fringe RPNI learner (§4.2). It infers a DFA
// consistent with a positive sample set P (every p in P is accepted)
// and a negative sample set N (every n in N is rejected) by
// state-merging over a prefix-tree acceptor built from P.
type RPNI struct {
	pta       *PTA
	negatives []string
}

// NewRPNI builds the PTA from positives and folds the symbols of
// negatives into its alphabet (§4.2 step 1).
func NewRPNI(positives, negatives []string) *RPNI {
	pta := NewPTA()
	for _, w := range positives {
		pta.AddPath(w, true)
	}
	negs := make([]string, len(negatives))
	copy(negs, negatives)
	for _, w := range negs {
		pta.AddAlphabet(w)
	}
	return &RPNI{pta: pta, negatives: negs}
}

// Learn runs the blue-fringe merge loop and returns a DFA consistent
// with every positive and negative sample. If, against the algorithm's
// own invariant, the final merged DFA is somehow inconsistent, the
// PTA-as-DFA is returned instead — it is trivially consistent since it
// structurally contains exactly the positive set (§4.2).
func (r *RPNI) Learn() *DFA {
	n := r.pta.NumNodes()
	rep := identitySlice(n)

	red := treeset.NewWith(utils.IntComparator)
	blue := treeset.NewWith(utils.IntComparator)

	addBlueOf := func(red *treeset.Set, blue *treeset.Set, state int) {
		for _, a := range r.pta.Alphabet() {
			v, ok := r.pta.nodes[state].next[a]
			if !ok {
				continue
			}
			if !red.Contains(int(v)) && find(rep, int(v)) == int(v) {
				blue.Add(int(v))
			}
		}
	}

	red.Add(0)
	addBlueOf(red, blue, 0)

	for !blue.Empty() {
		qb := blue.Values()[0].(int)
		blue.Remove(qb)

		merged := false
		for _, qrv := range red.Values() {
			qr := qrv.(int)
			if tryRep := r.tryMerge(rep, qr, qb); tryRep != nil {
				rep = tryRep
				merged = true
				break
			}
		}
		if !merged {
			red.Add(qb)
		}

		blue = treeset.NewWith(utils.IntComparator)
		for _, rv := range red.Values() {
			addBlueOf(red, blue, rv.(int))
		}
	}

	dfa := r.materialize(rep, true)
	if !r.consistentWithNegatives(dfa) {
		return r.materialize(identitySlice(n), true)
	}
	return dfa
}

// tryMerge attempts to merge qb into qr against a copy of rep,
// propagating the merge homomorphically (whenever two classes share a
// symbol-successor pair, those successors are unified too) until a
// fixed point, then checks the resulting DFA against every negative.
// It returns the committed partition on success, or nil to signal the
// merge must be rolled back (internal NoMerge outcome — never surfaced
// past this function, per §7).
func (r *RPNI) tryMerge(repIn []int, qr, qb int) []int {
	rep := append([]int(nil), repIn...)
	rep[qb] = qr

	worklist := linkedlistqueue.New()
	worklist.Enqueue([2]int{qr, qb})

	alphabet := r.pta.Alphabet()
	for !worklist.Empty() {
		v, _ := worklist.Dequeue()
		pair := v.([2]int)
		x, y := pair[0], pair[1]
		for _, a := range alphabet {
			ny, oky := r.pta.nodes[y].next[a]
			if !oky {
				continue
			}
			nx, okx := r.pta.nodes[x].next[a]
			if !okx {
				continue
			}
			rx := find(rep, int(nx))
			ry := find(rep, int(ny))
			if rx != ry {
				rep[ry] = rx
				worklist.Enqueue([2]int{rx, ry})
			}
		}
	}

	dfa := r.materialize(rep, true)
	if !r.consistentWithNegatives(dfa) {
		return nil
	}
	return rep
}

func (r *RPNI) consistentWithNegatives(dfa *DFA) bool {
	for _, w := range r.negatives {
		if dfa.Accepts(w) {
			return false
		}
	}
	return true
}

// materialize builds a DFA from the PTA under partition rep: one state
// per equivalence class, reachable canonically via find, with new
// state ids assigned in ascending PTA-node order (§4.2 determinism).
func (r *RPNI) materialize(rep []int, doComplete bool) *DFA {
	n := len(r.pta.nodes)
	canon := append([]int(nil), rep...)
	for v := 0; v < n; v++ {
		for canon[v] != canon[canon[v]] {
			canon[v] = canon[canon[v]]
		}
	}

	idmap := map[int]int{}
	nextID := 0
	for v := 0; v < n; v++ {
		rt := canon[v]
		if _, ok := idmap[rt]; !ok {
			idmap[rt] = nextID
			nextID++
		}
	}

	dfa := &DFA{
		Delta:    make([]map[byte]int, nextID),
		Accept:   make([]bool, nextID),
		Alphabet: r.pta.Alphabet(),
	}
	for i := range dfa.Delta {
		dfa.Delta[i] = map[byte]int{}
	}

	for v := 0; v < n; v++ {
		rt := idmap[canon[v]]
		if r.pta.nodes[v].accept {
			dfa.Accept[rt] = true
		}
	}
	for v := 0; v < n; v++ {
		rt := idmap[canon[v]]
		for _, a := range r.pta.Alphabet() {
			u, ok := r.pta.nodes[v].next[a]
			if !ok {
				continue
			}
			ru := idmap[canon[u]]
			dfa.Delta[rt][a] = ru
		}
	}
	dfa.Start = idmap[canon[0]]
	if doComplete {
		dfa.Complete()
	}
	return dfa
}

func find(rep []int, v int) int {
	r := v
	for rep[r] != r {
		r = rep[r]
	}
	return r
}

func identitySlice(n int) []int {
	rep := make([]int, n)
	for i := range rep {
		rep[i] = i
	}
	return rep
}
