// Package forest turns the flat heir records of one application into an
// explicit tree with outline serials. It is pure: no I/O, no hidden state,
// and the input slice is never mutated.
package forest

import (
	"sort"

	"warishd/internal/warish/models"
	"warishd/pkg/domain"
)

// Node is one assembled heir with its position in the tree resolved. The
// record is a copy, so mutating a node never leaks back into the store or the
// caller's slice.
type Node struct {
	*models.HeirRecord
	Serial   string  `json:"serial"`
	Depth    int     `json:"depth"`
	Children []*Node `json:"children"`
}

// Forest is the assembled view of one application's heir records.
type Forest struct {
	Roots []*Node `json:"roots"`
	// PromotedOrphans lists records whose parent id did not resolve within the
	// input set. They are promoted to root level (fail open) rather than
	// silently dropped; callers should log them as an integrity signal.
	PromotedOrphans []domain.HeirID `json:"promoted_orphans,omitempty"`
}

// Size returns the number of records in the forest.
func (f *Forest) Size() int {
	n := 0
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(f.Roots)
	return n
}

// Assemble builds the forest for one application from its flat, unordered
// records. Records with no parent id become roots; every other record is
// attached beneath its parent. Sibling order is stable: creation time, then
// id as a tie-break. Serials are assigned top-down during assembly.
//
// The in-memory aggregate is the read model only; mutation always goes back
// through the store, which remains the source of truth.
func Assemble(records []*models.HeirRecord) *Forest {
	byID := make(map[domain.HeirID]*models.HeirRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	var roots []*models.HeirRecord
	var orphans []domain.HeirID
	byParent := make(map[domain.HeirID][]*models.HeirRecord)
	for _, rec := range records {
		switch {
		case rec.ParentID == nil:
			roots = append(roots, rec)
		default:
			if _, ok := byID[*rec.ParentID]; !ok {
				orphans = append(orphans, rec.ID)
				roots = append(roots, rec)
				continue
			}
			byParent[*rec.ParentID] = append(byParent[*rec.ParentID], rec)
		}
	}

	f := &Forest{PromotedOrphans: orphans}
	f.Roots = buildLevel(roots, byParent, 0, "")
	return f
}

func buildLevel(siblings []*models.HeirRecord, byParent map[domain.HeirID][]*models.HeirRecord, depth int, parentSerial string) []*Node {
	sortSiblings(siblings)
	nodes := make([]*Node, 0, len(siblings))
	for i, rec := range siblings {
		node := &Node{
			HeirRecord: rec.Clone(),
			Serial:     Serial(depth, i, parentSerial),
			Depth:      depth,
		}
		node.Children = buildLevel(byParent[rec.ID], byParent, depth+1, node.Serial)
		nodes = append(nodes, node)
	}
	return nodes
}

func sortSiblings(siblings []*models.HeirRecord) {
	sort.SliceStable(siblings, func(i, j int) bool {
		if !siblings[i].CreatedAt.Equal(siblings[j].CreatedAt) {
			return siblings[i].CreatedAt.Before(siblings[j].CreatedAt)
		}
		return siblings[i].ID.String() < siblings[j].ID.String()
	})
}
