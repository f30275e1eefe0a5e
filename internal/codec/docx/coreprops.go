package docx

import (
	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

func metadataFromXML(root *etree.Element) model.Metadata {
	m := model.Metadata{}
	if el := oxml.FindElement(root, "dc:title"); el != nil {
		m.Title = el.Text()
	}
	if el := oxml.FindElement(root, "dc:subject"); el != nil {
		m.Subject = el.Text()
	}
	if el := oxml.FindElement(root, "dc:creator"); el != nil {
		m.Creator = el.Text()
	}
	if el := oxml.FindElement(root, "cp:keywords"); el != nil {
		m.Keywords = el.Text()
	}
	if el := oxml.FindElement(root, "dc:description"); el != nil {
		m.Description = el.Text()
	}
	if el := oxml.FindElement(root, "cp:lastModifiedBy"); el != nil {
		m.LastModifiedBy = el.Text()
	}
	if el := oxml.FindElement(root, "cp:revision"); el != nil {
		m.Revision = el.Text()
	}
	if el := oxml.FindElement(root, "dcterms:created"); el != nil {
		m.Created = el.Text()
	}
	if el := oxml.FindElement(root, "dcterms:modified"); el != nil {
		m.Modified = el.Text()
	}
	return m
}

// metadataToXML builds docProps/core.xml. The xsi namespace isn't part of
// this codec's wordprocessingml Nsmap (it's package-metadata-only), so it's
// declared directly rather than through oxml.OxmlElement.
func metadataToXML(m model.Metadata) *etree.Element {
	root := oxml.OxmlElement("cp:coreProperties", "dc", "dcterms")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	writeTextChild(root, "dc:title", m.Title)
	writeTextChild(root, "dc:subject", m.Subject)
	writeTextChild(root, "dc:creator", m.Creator)
	writeTextChild(root, "cp:keywords", m.Keywords)
	writeTextChild(root, "dc:description", m.Description)
	writeTextChild(root, "cp:lastModifiedBy", m.LastModifiedBy)
	writeTextChild(root, "cp:revision", m.Revision)
	writeW3CDTFChild(root, "dcterms:created", m.Created)
	writeW3CDTFChild(root, "dcterms:modified", m.Modified)
	return root
}

func writeTextChild(parent *etree.Element, tag, text string) {
	if text == "" {
		return
	}
	oxml.SetText(oxml.Child(parent, tag), text)
}

func writeW3CDTFChild(parent *etree.Element, tag, text string) {
	if text == "" {
		return
	}
	el := oxml.Child(parent, tag)
	oxml.SetText(el, text)
	el.CreateAttr("xsi:type", "dcterms:W3CDTF")
}
