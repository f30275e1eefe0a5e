package docx

import (
	"strings"

	"github.com/vortex/wordcore/internal/codec/opc"
	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/codec/styleschema"
	"github.com/vortex/wordcore/internal/model"
)

// ImportDocx parses a .docx package into the document model, following
// spec.md §4.5.1's ten steps: open the OPC package, locate the main
// document part, split its body into sections, then fold in every
// auxiliary part (styles, numbering, media, headers/footers, comments,
// notes, core properties, settings, theme) this codec understands —
// falling back to built-in defaults for anything absent and preserving
// everything else verbatim in RawParts.
func ImportDocx(data []byte) (*model.Document, error) {
	pkg, err := opc.OpenBytes(data, newPartFactory())
	if err != nil {
		return nil, ErrMalformed(err, "opening package")
	}

	mainPart, err := pkg.MainDocumentPart()
	if err != nil {
		return nil, ErrMalformed(err, "locating main document part")
	}
	docXmlPart, ok := mainPart.(*opc.XmlPart)
	if !ok || docXmlPart.Element() == nil {
		return nil, ErrMalformed(nil, "main document part is not a parsed xml part")
	}

	bodyEl := oxml.FindElement(docXmlPart.Element(), "w:body")
	if bodyEl == nil {
		return nil, ErrMalformed(nil, "word/document.xml has no w:body")
	}

	media, assetByPart := harvestMedia(pkg)
	ctx := &importCtx{docRels: docXmlPart.Rels(), assetByPart: assetByPart}

	sections := bodyToSections(bodyEl, ctx)
	body := model.NewElement(model.TagBody, nil, sectionNodes(sections)...)

	doc := &model.Document{
		Root:     model.NewElement(model.TagDocument, nil, body),
		Headers:  map[string]*model.Element{},
		Footers:  map[string]*model.Element{},
		Media:    media,
		RawParts: map[string][]byte{},
	}

	if xp := findXmlPartBySuffix(pkg, "/word/styles.xml"); xp != nil {
		doc.Styles = stylesFromXML(xp.Element())
	}
	if xp := findXmlPartBySuffix(pkg, "/word/numbering.xml"); xp != nil {
		doc.Numbering = numberingFromXML(xp.Element())
	}
	if doc.Styles == nil || doc.Numbering == nil {
		if defStyles, defNum, err := styleschema.Defaults(); err == nil {
			if doc.Styles == nil {
				doc.Styles = defStyles
			}
			if doc.Numbering == nil {
				doc.Numbering = defNum
			}
		}
	}

	for _, rel := range docXmlPart.Rels().All() {
		if rel.TargetPart == nil {
			continue
		}
		xp, ok := rel.TargetPart.(*opc.XmlPart)
		if !ok || xp.Element() == nil {
			continue
		}
		id := headerFooterID(rel.TargetPart.PartName())
		switch rel.RelType {
		case opc.RTHeader:
			doc.Headers[id] = headerFooterFromXML(xp.Element(), ctx, model.TagHeader)
		case opc.RTFooter:
			doc.Footers[id] = headerFooterFromXML(xp.Element(), ctx, model.TagFooter)
		}
	}

	if xp := findXmlPartBySuffix(pkg, "/word/comments.xml"); xp != nil {
		doc.Comments = commentsFromXML(xp.Element(), ctx)
	}
	if xp := findXmlPartBySuffix(pkg, "/word/footnotes.xml"); xp != nil {
		doc.Footnotes = notesFromXML(xp.Element(), "w:footnote", ctx)
	}
	if xp := findXmlPartBySuffix(pkg, "/word/endnotes.xml"); xp != nil {
		doc.Endnotes = notesFromXML(xp.Element(), "w:endnote", ctx)
	}
	if xp := findXmlPartBySuffix(pkg, "/docProps/core.xml"); xp != nil {
		doc.Metadata = metadataFromXML(xp.Element())
	}
	if xp := findXmlPartBySuffix(pkg, "/word/settings.xml"); xp != nil {
		doc.Settings = settingsFromXML(xp.Element())
	}
	if xp := findXmlPartBySuffix(pkg, "/word/theme/theme1.xml"); xp != nil {
		doc.Theme = themeFromXML(xp.Element())
	} else {
		doc.Theme = defaultTheme()
	}

	for _, part := range pkg.Parts() {
		if isKnownPart(part.PartName()) {
			continue
		}
		blob, err := part.Blob()
		if err != nil {
			continue
		}
		doc.RawParts[string(part.PartName())] = blob
	}

	return doc, nil
}

func sectionNodes(sections []*model.Element) []model.Node {
	out := make([]model.Node, len(sections))
	for i, s := range sections {
		out[i] = s
	}
	return out
}

func findXmlPartBySuffix(pkg *opc.OpcPackage, name string) *opc.XmlPart {
	for _, part := range pkg.Parts() {
		if string(part.PartName()) != name {
			continue
		}
		xp, ok := part.(*opc.XmlPart)
		if !ok || xp.Element() == nil {
			return nil
		}
		return xp
	}
	return nil
}

// isKnownPart reports whether this codec already folds the named part into
// a typed field, so the raw-part preservation pass in ImportDocx doesn't
// duplicate it into RawParts.
func isKnownPart(name opc.PackURI) bool {
	s := string(name)
	switch s {
	case "/word/document.xml", "/word/styles.xml", "/word/numbering.xml",
		"/word/comments.xml", "/word/footnotes.xml", "/word/endnotes.xml",
		"/word/settings.xml", "/word/theme/theme1.xml", "/docProps/core.xml":
		return true
	}
	switch {
	case strings.HasPrefix(s, "/word/media/"):
		return true
	case strings.HasPrefix(s, "/word/header"):
		return true
	case strings.HasPrefix(s, "/word/footer"):
		return true
	default:
		return false
	}
}
