package pattern

import (
	"github.com/cespare/xxhash"
	"github.com/samber/lo"

	"github.com/yifanzh/gomoku/board"
)

const alphabetSize = 4

func glyphCode(g byte) int32 {
	switch g {
	case Empty:
		return 0
	case BlackStone:
		return 1
	case WhiteStone:
		return 2
	default:
		return 3
	}
}

// Searcher is a multi-pattern matcher over line strings: an
// Aho–Corasick automaton stored in double-array form for compact,
// constant-time transitions. goto(s, c) = base[s]+c, valid iff
// check[base[s]+c] == s; fail[s] is the suffix link. outputs carries,
// per state, the ordinals of patterns ending there, pre-merged down
// the fail chain so a query emits every overlapping match in one pass.
//
// A Searcher is immutable after construction; queries are read-only
// and safe to share across goroutines.
type Searcher struct {
	base    []int32
	check   []int32
	fail    []int32
	outputs [][]int32

	patterns []Pattern
}

// NewSearcher expands the prototypes (mirror, colour reversal, glyph
// wildcards) and builds the automaton over the results.
func NewSearcher(protos []Proto) *Searcher {
	s := &Searcher{patterns: expandProtos(protos)}
	nodes := s.buildTrie()
	s.place(nodes)
	s.link(nodes)
	return s
}

// Patterns returns the expanded concrete patterns the automaton was
// built from.
func (s *Searcher) Patterns() []Pattern {
	return s.patterns
}

// Find streams every pattern occurrence in target, calling fn with the
// matched pattern and the exclusive end offset of the match within
// target. Overlapping and nested matches are all reported. Returning
// false from fn stops the scan.
func (s *Searcher) Find(target []byte, fn func(p *Pattern, end int) bool) {
	state := int32(0)
	for i := 0; i < len(target); i++ {
		state = s.step(state, glyphCode(target[i]))
		for _, ord := range s.outputs[state] {
			if !fn(&s.patterns[ord], i+1) {
				return
			}
		}
	}
}

// Match is one pattern occurrence; End is the exclusive end offset, so
// the match covers target[End-len(Pattern.Str) : End].
type Match struct {
	Pattern *Pattern
	End     int
}

// Matches collects every occurrence in target.
func (s *Searcher) Matches(target []byte) []Match {
	var out []Match
	s.Find(target, func(p *Pattern, end int) bool {
		out = append(out, Match{Pattern: p, End: end})
		return true
	})
	return out
}

// step follows the goto function, falling back along suffix links
// until a transition exists or the root absorbs the glyph.
func (s *Searcher) step(state, c int32) int32 {
	for {
		t := s.base[state] + c
		if t > 0 && t < int32(len(s.check)) && s.check[t] == state {
			return t
		}
		if state == 0 {
			return 0
		}
		state = s.fail[state]
	}
}

type trieNode struct {
	children [alphabetSize]int32
	out      []int32
	pos      int32
}

func newTrieNode() trieNode {
	return trieNode{children: [alphabetSize]int32{-1, -1, -1, -1}}
}

func (s *Searcher) buildTrie() []trieNode {
	nodes := []trieNode{newTrieNode()}
	for ord := range s.patterns {
		cur := int32(0)
		str := s.patterns[ord].Str
		for i := 0; i < len(str); i++ {
			c := glyphCode(str[i])
			next := nodes[cur].children[c]
			if next < 0 {
				next = int32(len(nodes))
				nodes = append(nodes, newTrieNode())
				nodes[cur].children[c] = next
			}
			cur = next
		}
		nodes[cur].out = append(nodes[cur].out, int32(ord))
	}
	return nodes
}

// place assigns every trie node a slot in the double array, breadth
// first so parents are settled before their children.
func (s *Searcher) place(nodes []trieNode) {
	s.grow(alphabetSize + 1)
	s.check[0] = -2 // root slot is occupied but has no parent

	queue := []int32{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := &nodes[id]

		var codes []int32
		for c := int32(0); c < alphabetSize; c++ {
			if n.children[c] >= 0 {
				codes = append(codes, c)
			}
		}
		if len(codes) == 0 {
			continue
		}
		// First base where every child slot is free. Bases start at 1
		// so no child can ever land on the root slot.
		base := int32(1)
		for {
			ok := true
			for _, c := range codes {
				s.grow(base + c + 1)
				if s.check[base+c] != -1 {
					ok = false
					break
				}
			}
			if ok {
				break
			}
			base++
		}
		s.base[n.pos] = base
		for _, c := range codes {
			child := n.children[c]
			slot := base + c
			s.check[slot] = n.pos
			nodes[child].pos = slot
			queue = append(queue, child)
		}
	}
}

// link fills in the suffix links and merges outputs down the fail
// chain, again breadth first so every fail target is finished before
// its dependants.
func (s *Searcher) link(nodes []trieNode) {
	var queue []int32
	for c := int32(0); c < alphabetSize; c++ {
		child := nodes[0].children[c]
		if child < 0 {
			continue
		}
		pos := nodes[child].pos
		s.fail[pos] = 0
		s.outputs[pos] = nodes[child].out
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := &nodes[id]
		for c := int32(0); c < alphabetSize; c++ {
			child := n.children[c]
			if child < 0 {
				continue
			}
			pos := nodes[child].pos
			f := s.step(s.fail[n.pos], c)
			s.fail[pos] = f
			s.outputs[pos] = append(append([]int32{}, nodes[child].out...), s.outputs[f]...)
			queue = append(queue, child)
		}
	}
}

func (s *Searcher) grow(size int32) {
	for int32(len(s.check)) < size {
		s.base = append(s.base, 0)
		s.check = append(s.check, -1)
		s.fail = append(s.fail, 0)
		s.outputs = append(s.outputs, nil)
	}
}

// expandProtos turns prototypes into concrete patterns: both
// orientations, both colours, and every admissible substitution of the
// wildcard glyphs ('_' is empty-or-edge, a blocking stone also admits
// the edge). Duplicates across the expansion are dropped.
func expandProtos(protos []Proto) []Pattern {
	seen := make(map[uint64]struct{})
	var out []Pattern
	for _, proto := range protos {
		for _, orient := range lo.Uniq([]string{proto.Str, reverseString(proto.Str)}) {
			for _, favour := range []board.Player{board.Black, board.White} {
				str := orient
				if favour == board.White {
					str = swapColours(str)
				}
				key := keySlotOf(str, favour)
				for _, concrete := range expandWildcards(str, favour) {
					sum := xxhash.Sum64String(string(GlyphOf(favour)) + concrete)
					if _, dup := seen[sum]; dup {
						continue
					}
					seen[sum] = struct{}{}
					out = append(out, Pattern{
						Str:     concrete,
						Favour:  favour,
						Type:    proto.Type,
						Score:   proto.Score,
						KeySlot: key,
					})
				}
			}
		}
	}
	return out
}

func expandWildcards(str string, favour board.Player) []string {
	blocker := WhiteStone
	if favour == board.White {
		blocker = BlackStone
	}
	results := []string{""}
	for i := 0; i < len(str); i++ {
		var choices []byte
		switch c := str[i]; c {
		case '^':
			choices = []byte{Empty}
		case '_':
			choices = []byte{Empty, Edge}
		case blocker:
			choices = []byte{blocker, Edge}
		default:
			choices = []byte{c}
		}
		next := make([]string, 0, len(results)*len(choices))
		for _, prefix := range results {
			for _, choice := range choices {
				next = append(next, prefix+string(choice))
			}
		}
		results = next
	}
	return results
}
