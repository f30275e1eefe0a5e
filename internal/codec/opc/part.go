package opc

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"
)

// xmlProcInst is the standard XML declaration for OPC parts, per
// spec.md §4.5.3.
const xmlProcInst = `version="1.0" encoding="UTF-8" standalone="yes"`

// Part represents one member of an OPC package. BeforeMarshal and
// AfterUnmarshal are hooks a concrete part (e.g. the main document part)
// can override to sync its in-memory model to/from its XML tree around
// a package Save/Open; BasePart and XmlPart no-op them.
type Part interface {
	PartName() PackURI
	ContentType() string
	Blob() ([]byte, error)
	Rels() *Relationships
	SetRels(rels *Relationships)
	BeforeMarshal() error
	AfterUnmarshal() error
}

// BasePart is the default Part implementation for binary (non-XML) parts —
// media assets, and anything this codec doesn't interpret.
type BasePart struct {
	partName    PackURI
	contentType string
	blob        []byte
	rels        *Relationships
}

// NewBasePart creates a new BasePart.
func NewBasePart(partName PackURI, contentType string, blob []byte) *BasePart {
	return &BasePart{
		partName:    partName,
		contentType: contentType,
		blob:        blob,
		rels:        NewRelationships(partName.BaseURI()),
	}
}

func (p *BasePart) PartName() PackURI           { return p.partName }
func (p *BasePart) ContentType() string         { return p.contentType }
func (p *BasePart) Blob() ([]byte, error)       { return p.blob, nil }
func (p *BasePart) Rels() *Relationships        { return p.rels }
func (p *BasePart) SetRels(rels *Relationships) { p.rels = rels }
func (p *BasePart) SetBlob(blob []byte)         { p.blob = blob }
func (p *BasePart) SetPartName(name PackURI)    { p.partName = name }
func (p *BasePart) BeforeMarshal() error        { return nil }
func (p *BasePart) AfterUnmarshal() error       { return nil }

// XmlPart extends BasePart with a parsed XML document, exposing the parsed
// root element directly rather than forcing callers to re-parse Blob().
type XmlPart struct {
	BasePart
	doc *etree.Document
}

func newXmlDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlProcInst)
	doc.WriteSettings.CanonicalEndTags = true
	return doc
}

// NewXmlPart creates an XmlPart by parsing blob as XML.
func NewXmlPart(partName PackURI, contentType string, blob []byte) (*XmlPart, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.WriteSettings.CanonicalEndTags = true
	if err := doc.ReadFromBytes(blob); err != nil {
		return nil, fmt.Errorf("opc: parsing xml part %q: %w", partName, err)
	}
	return &XmlPart{
		BasePart: *NewBasePart(partName, contentType, nil),
		doc:      doc,
	}, nil
}

// NewXmlPartFromElement creates an XmlPart adopting an existing element as
// its root.
func NewXmlPartFromElement(partName PackURI, contentType string, element *etree.Element) *XmlPart {
	doc := newXmlDoc()
	doc.SetRoot(element)
	return &XmlPart{
		BasePart: *NewBasePart(partName, contentType, nil),
		doc:      doc,
	}
}

// Element returns the part's root XML element, or nil.
func (p *XmlPart) Element() *etree.Element {
	if p.doc == nil {
		return nil
	}
	return p.doc.Root()
}

// Blob serializes the XML document to bytes with the standard declaration.
func (p *XmlPart) Blob() ([]byte, error) {
	if p.doc == nil || p.doc.Root() == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if _, err := p.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("opc: serializing xml part %q: %w", p.partName, err)
	}
	return buf.Bytes(), nil
}

// PartConstructor builds a Part from its raw serialized form.
type PartConstructor func(partName PackURI, contentType, relType string, blob []byte) (Part, error)

// PartFactory selects the right Part implementation per content type (or a
// custom selector keyed on content type + relationship type).
type PartFactory struct {
	constructors map[string]PartConstructor
	selector     func(contentType, relType string) PartConstructor
}

// NewPartFactory creates an empty factory.
func NewPartFactory() *PartFactory {
	return &PartFactory{constructors: map[string]PartConstructor{}}
}

// Register maps a content type to a constructor.
func (f *PartFactory) Register(contentType string, ctor PartConstructor) {
	f.constructors[contentType] = ctor
}

// SetSelector installs a selector that takes precedence over the content
// type map.
func (f *PartFactory) SetSelector(sel func(contentType, relType string) PartConstructor) {
	f.selector = sel
}

// New builds a Part, falling back to BasePart when nothing matches.
func (f *PartFactory) New(partName PackURI, contentType, relType string, blob []byte) (Part, error) {
	if f.selector != nil {
		if ctor := f.selector(contentType, relType); ctor != nil {
			return ctor(partName, contentType, relType, blob)
		}
	}
	if ctor, ok := f.constructors[contentType]; ok {
		return ctor(partName, contentType, relType, blob)
	}
	return NewBasePart(partName, contentType, blob), nil
}
