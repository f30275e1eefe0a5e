// Package packaging provides a high-level view over the document model for
// the HTTP service layer: opening and exporting .docx bytes through
// internal/codec/docx, and reducing an opened document to the structural
// digest the open/validate endpoints return as JSON by walking the parsed
// model tree and counting nodes rather than inspecting raw OPC parts.
package packaging

import (
	"sort"

	"github.com/vortex/wordcore/internal/codec/docx"
	"github.com/vortex/wordcore/internal/model"
)

// Open parses .docx bytes into the document model.
func Open(data []byte) (*model.Document, error) {
	return docx.ImportDocx(data)
}

// Export serializes the document model back into .docx bytes.
func Export(doc *model.Document) ([]byte, error) {
	return docx.ExportDocx(doc)
}

// Summary is the structural digest the service layer hands back as JSON:
// counts and flags rather than content.
type Summary struct {
	Title          string   `json:"title,omitempty"`
	Creator        string   `json:"creator,omitempty"`
	Description    string   `json:"description,omitempty"`
	ParagraphCount int      `json:"paragraph_count"`
	TableCount     int      `json:"table_count"`
	SectionCount   int      `json:"section_count"`
	HeaderCount    int      `json:"header_count"`
	FooterCount    int      `json:"footer_count"`
	MediaFiles     []string `json:"media_files,omitempty"`
	HasStyles      bool     `json:"has_styles"`
	HasNumbering   bool     `json:"has_numbering"`
	HasComments    bool     `json:"has_comments"`
	HasFootnotes   bool     `json:"has_footnotes"`
	HasEndnotes    bool     `json:"has_endnotes"`
}

// Summarize reduces doc to its structural digest.
func Summarize(doc *model.Document) Summary {
	s := Summary{
		Title:        doc.Metadata.Title,
		Creator:      doc.Metadata.Creator,
		Description:  doc.Metadata.Description,
		SectionCount: len(doc.Sections()),
		HeaderCount:  len(doc.Headers),
		FooterCount:  len(doc.Footers),
		HasStyles:    doc.Styles != nil,
		HasNumbering: doc.Numbering != nil,
		HasComments:  doc.Comments != nil && len(doc.Comments.Comments) > 0,
		HasFootnotes: doc.Footnotes != nil && len(doc.Footnotes.Notes) > 0,
		HasEndnotes:  doc.Endnotes != nil && len(doc.Endnotes.Notes) > 0,
	}
	for id := range doc.Media {
		s.MediaFiles = append(s.MediaFiles, id)
	}
	sort.Strings(s.MediaFiles)
	countBlocks(doc.Root, &s)
	return s
}

func countBlocks(n model.Node, s *Summary) {
	el, ok := model.AsElement(n)
	if !ok {
		return
	}
	switch el.Tag() {
	case model.TagParagraph:
		s.ParagraphCount++
	case model.TagTable:
		s.TableCount++
	}
	for _, c := range el.Children() {
		countBlocks(c, s)
	}
}
