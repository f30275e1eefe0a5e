package opc

import "fmt"

// PackageReader orchestrates reading a physical package into its
// serialized form: content types, package-level relationships, and every
// reachable part with its own relationships. It tolerates relationships
// that target a missing part ("dangling" rels, left for the caller to
// preserve) and parts with no content-type entry (surfaced with an empty
// ContentType rather than failing the read), matching the teacher's
// reader.go tolerance for malformed real-world documents.
type PackageReader struct{}

// Read parses phys into its serialized constituents.
func (PackageReader) Read(phys *PhysPkgReader) (*ContentTypeMap, []SerializedRelationship, []SerializedPart, error) {
	ctBlob, err := phys.ContentTypesXml()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opc: reading package: %w", err)
	}
	contentTypes, err := ParseContentTypes(ctBlob)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opc: reading package: %w", err)
	}

	var pkgRels []SerializedRelationship
	if relsBlob, _ := phys.RelsXmlFor(PackageURI); relsBlob != nil {
		pkgRels, err = ParseRelationships(relsBlob, "/")
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opc: reading package: %w", err)
		}
	}

	parts := walkParts(phys, contentTypes, pkgRels)
	return contentTypes, pkgRels, parts, nil
}

// walkParts performs an iterative (explicit-stack) depth-first walk of the
// relationship graph starting from seed, visiting each reachable internal
// part exactly once. Iterative rather than recursive so a pathologically
// deep relationship chain can't blow the goroutine stack.
func walkParts(phys *PhysPkgReader, contentTypes *ContentTypeMap, seed []SerializedRelationship) []SerializedPart {
	visited := map[PackURI]bool{}
	var result []SerializedPart
	stack := [][]SerializedRelationship{seed}

	for len(stack) > 0 {
		rels := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rel := range rels {
			if rel.IsExternal() {
				continue
			}
			partName := rel.TargetPartname()
			if visited[partName] {
				continue
			}
			visited[partName] = true

			blob, err := phys.BlobFor(partName)
			if err != nil {
				// Dangling relationship: target part missing from the
				// zip. Preserved at the Relationship level by the
				// caller; no part to walk into.
				continue
			}

			srels := readSRels(phys, partName)
			result = append(result, SerializedPart{
				Partname:    partName,
				ContentType: contentTypes.Lookup(partName),
				RelType:     rel.RelType,
				Blob:        blob,
				SRels:       srels,
			})
			if len(srels) > 0 {
				stack = append(stack, srels)
			}
		}
	}
	return result
}

// readSRels reads and parses partName's own .rels file, returning nil if
// it has none.
func readSRels(phys *PhysPkgReader, partName PackURI) []SerializedRelationship {
	blob, err := phys.RelsXmlFor(partName)
	if err != nil || blob == nil {
		return nil
	}
	srels, err := ParseRelationships(blob, partName.BaseURI())
	if err != nil {
		return nil
	}
	return srels
}
