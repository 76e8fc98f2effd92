package topology

import (
	"sort"

	"github.com/bricklab/studwork/pkg/brick"
)

// WidenMap lists, per part id, the local cavity positions that must be
// enlarged because a neighbor's stud seats there. Every part id gets an
// entry; an empty list is a valid outcome.
type WidenMap map[int][]brick.GridCoord

// Contact is one required contact interaction between two parts.
type Contact struct {
	A        int         `json:"a"`
	B        int         `json:"b"`
	Surfaces SurfacePair `json:"surfaces"`
}

// ContactList is the ordered list of contact interactions. Downstream
// interaction names derive from the order, so it is deterministic:
// ascending A, and per A all side contacts in ascending B followed by
// all stud contacts in ascending B.
type ContactList []Contact

// Topology bundles the two terminal artifacts of the assembly graph.
type Topology struct {
	Widen    WidenMap    `json:"widen"`
	Contacts ContactList `json:"contacts"`
}

// pairRelation couples an ordered part pair with its classification.
// It is the builder's aggregation unit and its unit-test seam.
type pairRelation struct {
	p, q int
	rel  RelationResult
}

// Build classifies every ordered pair of parts and folds the results
// into the widen map and contact list. It performs no geometry of its
// own; all geometric decisions live in the Classifier.
func Build(parts []brick.PlacedPart, c Classifier) Topology {
	ordered := make([]brick.PlacedPart, len(parts))
	copy(ordered, parts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	ids := make([]int, len(ordered))
	rels := make([]pairRelation, 0, len(ordered)*(len(ordered)-1))
	for i, p := range ordered {
		ids[i] = p.ID
		for _, q := range ordered {
			if q.ID == p.ID {
				continue
			}
			rels = append(rels, pairRelation{p: p.ID, q: q.ID, rel: c.Classify(p, q)})
		}
	}
	return fold(ids, rels)
}

// fold aggregates pre-computed pair relations. rels must be grouped by
// p in ascending order with q ascending inside each group; Build
// guarantees this, and the ordering fixes the output byte-for-byte.
func fold(ids []int, rels []pairRelation) Topology {
	widen := make(WidenMap, len(ids))
	for _, id := range ids {
		widen[id] = make([]brick.GridCoord, 0)
	}

	contacts := make(ContactList, 0)
	i := 0
	for i < len(rels) {
		p := rels[i].p
		var sides, studs ContactList
		for i < len(rels) && rels[i].p == p {
			r := rels[i]
			if r.rel.Kind == RelationBottom {
				widen[p] = append(widen[p], r.rel.GridOverlap...)
			}
			if len(r.rel.SurfacePairs) > 0 {
				sides = append(sides, Contact{A: p, B: r.q, Surfaces: r.rel.SurfacePairs[0]})
			}
			if r.rel.StudContact {
				studs = append(studs, Contact{A: p, B: r.q, Surfaces: SurfacePair{A: SurfaceBot, B: SurfaceTop}})
			}
			i++
		}
		contacts = append(contacts, sides...)
		contacts = append(contacts, studs...)
	}
	return Topology{Widen: widen, Contacts: contacts}
}
