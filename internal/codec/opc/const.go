package opc

// PackageURI is the virtual partname of the package itself — the source of
// package-level relationships (those in /_rels/.rels).
const PackageURI PackURI = "/"

// Target modes, mirroring OPC's TargetMode enumeration.
const (
	TargetModeInternal = "Internal"
	TargetModeExternal = "External"
)

// Relationship type URIs, per spec.md §6.2's "…/2006/relationships/<role>"
// convention.
const (
	RTOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RTStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RTNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	RTImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RTHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RTHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RTFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RTComments       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
	RTFootnotes      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes"
	RTEndnotes       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/endnotes"
	RTSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RTFontTable      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/fontTable"
	RTTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RTWebSettings    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/webSettings"
	RTThumbnail      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
	RTCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// Content types for the parts spec.md §6.1 names.
const (
	CTWmlDocumentMain = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	CTWmlStyles       = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	CTWmlNumbering    = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	CTWmlComments     = "application/vnd.openxmlformats-officedocument.wordprocessingml.comments+xml"
	CTWmlFootnotes    = "application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml"
	CTWmlEndnotes     = "application/vnd.openxmlformats-officedocument.wordprocessingml.endnotes+xml"
	CTWmlSettings     = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	CTWmlHeader       = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	CTWmlFooter       = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	CTWmlTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	CTCoreProperties  = "application/vnd.openxmlformats-package.core-properties+xml"
	CTRelationships   = "application/vnd.openxmlformats-package.relationships+xml"
	CTXml             = "application/xml"
)

// strictToTransitional maps ISO/IEC 29500 "strict" relationship type URIs
// (purl.oclc.org) to their transitional equivalents, so documents produced
// by strict-conformant writers still resolve via the transitional constants
// above. Grounded on the teacher's opc/strict_test.go observable contract.
var strictToTransitional = map[string]string{
	"http://purl.oclc.org/ooxml/officeDocument/relationships/officeDocument": RTOfficeDocument,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/styles":         RTStyles,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/numbering":      RTNumbering,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/image":         RTImage,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/header":        RTHeader,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/footer":        RTFooter,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/fontTable":     RTFontTable,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/theme":        RTTheme,
	"http://purl.oclc.org/ooxml/officeDocument/relationships/settings":     RTSettings,
}

// NormalizeRelType maps a strict relationship type URI to its transitional
// equivalent; unrecognized or already-transitional URIs pass through
// unchanged.
func NormalizeRelType(relType string) string {
	if norm, ok := strictToTransitional[relType]; ok {
		return norm
	}
	return relType
}
