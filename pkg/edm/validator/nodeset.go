package validator

import "github.com/OData/odata.net-sub135/pkg/edm"

// nodeSet is an identity set that remembers insertion order.
type nodeSet struct {
	index map[edm.Element]int
	nodes []edm.Element
}

func newNodeSet() *nodeSet {
	return &nodeSet{index: make(map[edm.Element]int)}
}

func (s *nodeSet) has(n edm.Element) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[n]
	return ok
}

func (s *nodeSet) add(n edm.Element) bool {
	if _, ok := s.index[n]; ok {
		return false
	}
	s.index[n] = len(s.nodes)
	s.nodes = append(s.nodes, n)
	return true
}

// remove drops n. The slot is kept as nil so indices stay valid.
func (s *nodeSet) remove(n edm.Element) {
	i, ok := s.index[n]
	if !ok {
		return
	}
	delete(s.index, n)
	s.nodes[i] = nil
}

func (s *nodeSet) len() int {
	return len(s.index)
}

// list returns the members in insertion order.
func (s *nodeSet) list() []edm.Element {
	out := make([]edm.Element, 0, len(s.index))
	for _, n := range s.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
