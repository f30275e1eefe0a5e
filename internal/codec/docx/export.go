package docx

import (
	"sort"
	"strings"

	"github.com/vortex/wordcore/internal/codec/opc"
	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// ExportDocx serializes the document model into a .docx package, following
// spec.md §4.5.2's six steps: build word/document.xml from the section
// tree, create every registered header/footer/media part so the body and
// section properties can reference them by relationship id, then attach
// styles/numbering/comments/notes/settings/theme/core-properties and any
// preserved raw parts. opc.PackageWriter derives [Content_Types].xml and
// every part's .rels from the parts and relationships assembled here, so
// nothing in this function builds those by hand.
func ExportDocx(doc *model.Document) ([]byte, error) {
	pkg := opc.NewOpcPackage(newPartFactory())

	docRoot := oxml.OxmlElement("w:document", "r", "wp", "a", "pic", "mc", "m", "wps")
	docPart := opc.NewXmlPartFromElement("/word/document.xml", opc.CTWmlDocumentMain, docRoot)
	pkg.AddPart(docPart)
	pkg.RelateTo(opc.RTOfficeDocument, docPart)

	ctx := &exportCtx{
		pkg:         pkg,
		docPart:     docPart,
		headerParts: map[string]opc.Part{},
		footerParts: map[string]opc.Part{},
		mediaParts:  registerMediaParts(pkg, doc.Media),
	}

	for _, id := range sortedElementKeys(doc.Headers) {
		name := pkg.NextPartname("/word", "header", "xml")
		part := opc.NewXmlPartFromElement(name, opc.CTWmlHeader, oxml.OxmlElement("w:hdr", "r", "wp", "a", "pic"))
		pkg.AddPart(part)
		ctx.headerParts[id] = part
	}
	for _, id := range sortedElementKeys(doc.Footers) {
		name := pkg.NextPartname("/word", "footer", "xml")
		part := opc.NewXmlPartFromElement(name, opc.CTWmlFooter, oxml.OxmlElement("w:ftr", "r", "wp", "a", "pic"))
		pkg.AddPart(part)
		ctx.footerParts[id] = part
	}

	docRoot.AddChild(sectionsToBody(doc.Sections(), ctx))

	for id, part := range ctx.headerParts {
		if xp, ok := part.(*opc.XmlPart); ok {
			fillBlocksXML(xp.Element(), doc.Headers[id].Children(), ctx)
		}
	}
	for id, part := range ctx.footerParts {
		if xp, ok := part.(*opc.XmlPart); ok {
			fillBlocksXML(xp.Element(), doc.Footers[id].Children(), ctx)
		}
	}

	if doc.Styles != nil {
		stylesPart := opc.NewXmlPartFromElement("/word/styles.xml", opc.CTWmlStyles, stylesToXML(doc.Styles))
		pkg.AddPart(stylesPart)
		docPart.Rels().GetOrAdd(opc.RTStyles, stylesPart)
	}
	if doc.Numbering != nil {
		numPart := opc.NewXmlPartFromElement("/word/numbering.xml", opc.CTWmlNumbering, numberingToXML(doc.Numbering))
		pkg.AddPart(numPart)
		docPart.Rels().GetOrAdd(opc.RTNumbering, numPart)
	}
	if doc.Comments != nil && len(doc.Comments.Comments) > 0 {
		commentsPart := opc.NewXmlPartFromElement("/word/comments.xml", opc.CTWmlComments, commentsToXML(doc.Comments, ctx))
		pkg.AddPart(commentsPart)
		docPart.Rels().GetOrAdd(opc.RTComments, commentsPart)
	}
	if doc.Footnotes != nil && len(doc.Footnotes.Notes) > 0 {
		fnPart := opc.NewXmlPartFromElement("/word/footnotes.xml", opc.CTWmlFootnotes, notesToXML(doc.Footnotes, "w:footnotes", "w:footnote", ctx))
		pkg.AddPart(fnPart)
		docPart.Rels().GetOrAdd(opc.RTFootnotes, fnPart)
	}
	if doc.Endnotes != nil && len(doc.Endnotes.Notes) > 0 {
		enPart := opc.NewXmlPartFromElement("/word/endnotes.xml", opc.CTWmlEndnotes, notesToXML(doc.Endnotes, "w:endnotes", "w:endnote", ctx))
		pkg.AddPart(enPart)
		docPart.Rels().GetOrAdd(opc.RTEndnotes, enPart)
	}

	settingsPart := opc.NewXmlPartFromElement("/word/settings.xml", opc.CTWmlSettings, settingsToXML(doc.Settings))
	pkg.AddPart(settingsPart)
	docPart.Rels().GetOrAdd(opc.RTSettings, settingsPart)

	theme := doc.Theme
	if theme == nil {
		theme = defaultTheme()
	}
	themePart := opc.NewXmlPartFromElement("/word/theme/theme1.xml", opc.CTWmlTheme, themeToXML(theme))
	pkg.AddPart(themePart)
	docPart.Rels().GetOrAdd(opc.RTTheme, themePart)

	corePart := opc.NewXmlPartFromElement("/docProps/core.xml", opc.CTCoreProperties, metadataToXML(doc.Metadata))
	pkg.AddPart(corePart)
	pkg.RelateTo(opc.RTCoreProperties, corePart)

	for name, blob := range doc.RawParts {
		pkg.AddPart(opc.NewBasePart(opc.PackURI(name), rawPartContentType(name), blob))
	}

	return pkg.SaveToBytes()
}

func sortedElementKeys(m map[string]*model.Element) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func rawPartContentType(name string) string {
	if strings.HasSuffix(name, ".xml") {
		return opc.CTXml
	}
	return "application/octet-stream"
}
