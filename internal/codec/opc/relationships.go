package opc

import (
	"fmt"
	"sort"
)

// Relationship is one edge in the OPC relationship graph: a source (a part
// or the package) related to a target (a part or an external URL) by a
// relationship type, addressed by a source-scoped id ("rId1", "rId2", …).
type Relationship struct {
	RID        string
	RelType    string
	TargetRef  string // relative ref for internal; full URL for external
	TargetPart Part   // nil when IsExternal, or when the target is dangling
	IsExternal bool
}

// Relationships is the ordered, source-scoped relationship collection for
// one part (or the package).
type Relationships struct {
	baseURI string
	byRID   map[string]*Relationship
	order   []string
	nextNum int
}

// NewRelationships creates an empty collection scoped to baseURI (the
// source part's directory, used to resolve/emit relative TargetRefs).
func NewRelationships(baseURI string) *Relationships {
	return &Relationships{baseURI: baseURI, byRID: map[string]*Relationship{}}
}

// BaseURI returns the source-scoped base directory.
func (r *Relationships) BaseURI() string { return r.baseURI }

// Len returns the number of relationships.
func (r *Relationships) Len() int { return len(r.order) }

// All returns the relationships in insertion order.
func (r *Relationships) All() []*Relationship {
	out := make([]*Relationship, 0, len(r.order))
	for _, rid := range r.order {
		out = append(out, r.byRID[rid])
	}
	return out
}

// GetByRID looks up a relationship by id, or nil if absent.
func (r *Relationships) GetByRID(rid string) *Relationship {
	return r.byRID[rid]
}

// GetByRelType returns the first relationship of the given type.
func (r *Relationships) GetByRelType(relType string) (*Relationship, error) {
	for _, rid := range r.order {
		if rel := r.byRID[rid]; rel.RelType == relType {
			return rel, nil
		}
	}
	return nil, fmt.Errorf("opc: no relationship of type %q", relType)
}

// Add creates and stores a new relationship with a freshly minted rId,
// returning it.
func (r *Relationships) Add(relType, targetRef string, targetPart Part, isExternal bool) *Relationship {
	rid := r.freshRID()
	rel := &Relationship{RID: rid, RelType: relType, TargetRef: targetRef, TargetPart: targetPart, IsExternal: isExternal}
	r.byRID[rid] = rel
	r.order = append(r.order, rid)
	return rel
}

// Load stores a relationship with an explicit rId, used while unmarshalling
// a package read from disk (ids there are author-assigned, not fresh).
func (r *Relationships) Load(rid, relType, targetRef string, targetPart Part, isExternal bool) {
	if _, exists := r.byRID[rid]; !exists {
		r.order = append(r.order, rid)
	}
	r.byRID[rid] = &Relationship{RID: rid, RelType: relType, TargetRef: targetRef, TargetPart: targetPart, IsExternal: isExternal}
}

// GetOrAdd returns the existing relationship to part (matching by target
// part identity and relType), or adds a new one.
func (r *Relationships) GetOrAdd(relType string, part Part) *Relationship {
	for _, rid := range r.order {
		rel := r.byRID[rid]
		if !rel.IsExternal && rel.TargetPart == part && rel.RelType == relType {
			return rel
		}
	}
	ref := part.PartName().RelativeRef(r.baseURI)
	return r.Add(relType, ref, part, false)
}

func (r *Relationships) freshRID() string {
	for {
		r.nextNum++
		rid := fmt.Sprintf("rId%d", r.nextNum)
		if _, exists := r.byRID[rid]; !exists {
			return rid
		}
	}
}

// sortedStringKeys returns the keys of m in sorted order.
func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
