package opc

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// OpcPackage is an in-memory OPC package: a set of parts related to each
// other (and to the package root) by a relationship graph. Adapted from
// the teacher's package.go, scoped to the parts spec.md's docx layout
// names.
type OpcPackage struct {
	factory *PartFactory
	rels    *Relationships
	parts   map[PackURI]Part
	order   []PackURI
}

// NewOpcPackage creates an empty package. A nil factory falls back to one
// that always constructs BasePart.
func NewOpcPackage(factory *PartFactory) *OpcPackage {
	if factory == nil {
		factory = NewPartFactory()
	}
	return &OpcPackage{
		factory: factory,
		rels:    NewRelationships(string(PackageURI)),
		parts:   map[PackURI]Part{},
	}
}

// OpenBytes reads a package held entirely in memory.
func OpenBytes(data []byte, factory *PartFactory) (*OpcPackage, error) {
	phys, err := NewPhysPkgReaderFromBytes(data)
	if err != nil {
		return nil, err
	}
	return openFromPhysReader(phys, factory)
}

// OpenFile reads a package from disk.
func OpenFile(path string, factory *PartFactory) (*OpcPackage, error) {
	phys, err := NewPhysPkgReaderFromFile(path)
	if err != nil {
		return nil, err
	}
	return openFromPhysReader(phys, factory)
}

func openFromPhysReader(phys *PhysPkgReader, factory *PartFactory) (*OpcPackage, error) {
	defer phys.Close()

	var pr PackageReader
	_, pkgRels, sparts, err := pr.Read(phys)
	if err != nil {
		return nil, err
	}

	pkg := NewOpcPackage(factory)
	srelsByName := make(map[PackURI][]SerializedRelationship, len(sparts))

	for _, sp := range sparts {
		part, err := pkg.factory.New(sp.Partname, sp.ContentType, sp.RelType, sp.Blob)
		if err != nil {
			return nil, fmt.Errorf("opc: constructing part %q: %w", sp.Partname, err)
		}
		pkg.parts[sp.Partname] = part
		pkg.order = append(pkg.order, sp.Partname)
		srelsByName[sp.Partname] = sp.SRels
	}

	loadRels(pkg.rels, pkgRels, pkg.parts)
	for partName, srels := range srelsByName {
		partRels := NewRelationships(partName.BaseURI())
		loadRels(partRels, srels, pkg.parts)
		pkg.parts[partName].SetRels(partRels)
	}

	for _, part := range pkg.parts {
		if err := part.AfterUnmarshal(); err != nil {
			return nil, fmt.Errorf("opc: after-unmarshal for part %q: %w", part.PartName(), err)
		}
	}

	return pkg, nil
}

// loadRels replays serialized relationships into dst, resolving internal
// targets against byName. A target absent from byName (a dangling
// relationship) is kept with a nil TargetPart rather than dropped, so a
// re-export doesn't silently corrupt an otherwise-valid document.
func loadRels(dst *Relationships, srels []SerializedRelationship, byName map[PackURI]Part) {
	for _, sr := range srels {
		if sr.IsExternal() {
			dst.Load(sr.RID, sr.RelType, sr.TargetRef, nil, true)
			continue
		}
		target := byName[sr.TargetPartname()] // nil when dangling
		dst.Load(sr.RID, sr.RelType, sr.TargetRef, target, false)
	}
}

// Save writes the package to w, invoking every part's BeforeMarshal hook
// first so in-memory model changes are flushed to their XML trees.
func (p *OpcPackage) Save(w io.Writer) error {
	for _, part := range p.Parts() {
		if err := part.BeforeMarshal(); err != nil {
			return fmt.Errorf("opc: before-marshal for part %q: %w", part.PartName(), err)
		}
	}
	var pw PackageWriter
	return pw.Write(w, p.rels, p.Parts())
}

// SaveToBytes serializes the package to an in-memory zip.
func (p *OpcPackage) SaveToBytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, part := range p.Parts() {
		if err := part.BeforeMarshal(); err != nil {
			return nil, fmt.Errorf("opc: before-marshal for part %q: %w", part.PartName(), err)
		}
	}
	var pw PackageWriter
	if err := pw.Write(&buf, p.rels, p.Parts()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveToFile serializes the package to a file on disk.
func (p *OpcPackage) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opc: creating package file: %w", err)
	}
	defer f.Close()
	data, err := p.SaveToBytes()
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// Rels returns the package-level relationships (those serialized to
// /_rels/.rels).
func (p *OpcPackage) Rels() *Relationships { return p.rels }

// Parts returns every part currently in the package, in the order each
// was added (insertion order for new parts; discovery order for an
// opened package).
func (p *OpcPackage) Parts() []Part {
	out := make([]Part, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.parts[name])
	}
	return out
}

// PartByName looks up a part by its partname.
func (p *OpcPackage) PartByName(name PackURI) (Part, error) {
	part, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("opc: no part named %q", name)
	}
	return part, nil
}

// MainDocumentPart returns the part related to the package by the
// officeDocument relationship type.
func (p *OpcPackage) MainDocumentPart() (Part, error) {
	rel, err := p.rels.GetByRelType(RTOfficeDocument)
	if err != nil {
		return nil, err
	}
	if rel.TargetPart == nil {
		return nil, fmt.Errorf("opc: main document relationship is dangling")
	}
	return rel.TargetPart, nil
}

// RelateTo records a package-level relationship to part, reusing an
// existing one of the same type if already present.
func (p *OpcPackage) RelateTo(relType string, part Part) *Relationship {
	return p.rels.GetOrAdd(relType, part)
}

// AddPart registers part with the package.
func (p *OpcPackage) AddPart(part Part) {
	if _, exists := p.parts[part.PartName()]; !exists {
		p.order = append(p.order, part.PartName())
	}
	p.parts[part.PartName()] = part
}

// NextPartname returns the lowest-numbered unused partname of the form
// "<dir>/<base><n>.<ext>", starting at 1.
func (p *OpcPackage) NextPartname(dir, base, ext string) PackURI {
	for n := 1; ; n++ {
		candidate := PackURI(fmt.Sprintf("%s/%s%d.%s", dir, base, n, ext))
		if _, exists := p.parts[candidate]; !exists {
			return candidate
		}
	}
}

// IterParts performs an iterative depth-first walk of the relationship
// graph from the package root, yielding each reachable part exactly
// once. Iterative (explicit stack) rather than recursive so a
// pathologically deep relationship chain can't overflow the stack.
func (p *OpcPackage) IterParts() []Part {
	visited := map[PackURI]bool{}
	var out []Part
	stack := []*Relationships{p.rels}

	for len(stack) > 0 {
		rels := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rel := range rels.All() {
			if rel.IsExternal || rel.TargetPart == nil {
				continue
			}
			name := rel.TargetPart.PartName()
			if visited[name] {
				continue
			}
			visited[name] = true
			out = append(out, rel.TargetPart)
			stack = append(stack, rel.TargetPart.Rels())
		}
	}
	return out
}

// IterRels performs the same depth-first walk as IterParts but yields
// every relationship edge exactly once, including ones whose target is
// external or dangling.
func (p *OpcPackage) IterRels() []*Relationship {
	visitedParts := map[PackURI]bool{}
	var out []*Relationship
	stack := []*Relationships{p.rels}

	for len(stack) > 0 {
		rels := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rel := range rels.All() {
			out = append(out, rel)
			if rel.IsExternal || rel.TargetPart == nil {
				continue
			}
			name := rel.TargetPart.PartName()
			if visitedParts[name] {
				continue
			}
			visitedParts[name] = true
			stack = append(stack, rel.TargetPart.Rels())
		}
	}
	return out
}
