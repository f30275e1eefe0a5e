package opc

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"
)

const relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

// ParseRelationships parses a .rels file's bytes into serialized
// relationships scoped to sourceBaseURI (the directory containing the part
// the .rels belongs to).
func ParseRelationships(blob []byte, sourceBaseURI string) ([]SerializedRelationship, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(blob); err != nil {
		return nil, fmt.Errorf("opc: parsing relationships: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("opc: relationships file has no root element")
	}

	var out []SerializedRelationship
	for _, rel := range root.ChildElements() {
		id := rel.SelectAttrValue("Id", "")
		relType := NormalizeRelType(rel.SelectAttrValue("Type", ""))
		target := rel.SelectAttrValue("Target", "")
		targetMode := rel.SelectAttrValue("TargetMode", TargetModeInternal)
		if id == "" {
			continue
		}
		out = append(out, SerializedRelationship{
			BaseURI:    sourceBaseURI,
			RID:        id,
			RelType:    relType,
			TargetRef:  target,
			TargetMode: targetMode,
		})
	}
	return out, nil
}

// serializeRelationships builds the .rels XML bytes for rels.
func serializeRelationships(rels *Relationships) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlProcInst)
	doc.WriteSettings.CanonicalEndTags = true

	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", relationshipsNS)

	for _, rel := range rels.All() {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", rel.RID)
		el.CreateAttr("Type", rel.RelType)
		el.CreateAttr("Target", rel.TargetRef)
		if rel.IsExternal {
			el.CreateAttr("TargetMode", TargetModeExternal)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("opc: serializing relationships: %w", err)
	}
	return buf.Bytes(), nil
}
