package docx

import (
	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/model"
)

// headerFooterFromXML reads a header or footer part's block content. The
// root element is w:hdr or w:ftr but the block walk is identical to a
// table cell's: a flat sequence of paragraphs and tables, no sections.
func headerFooterFromXML(root *etree.Element, ctx *importCtx, tag model.Tag) *model.Element {
	var blocks []model.Node
	for _, c := range root.ChildElements() {
		switch {
		case c.Space == "w" && c.Tag == "p":
			blocks = append(blocks, paragraphFromXML(c, ctx))
		case c.Space == "w" && c.Tag == "tbl":
			blocks = append(blocks, tableFromXML(c, ctx))
		}
	}
	return model.NewElement(tag, nil, blocks...)
}

// fillBlocksXML appends the OOXML form of each block node as a child of
// root, used for header and footer content.
func fillBlocksXML(root *etree.Element, blocks []model.Node, ctx *exportCtx) {
	for _, b := range blocks {
		if x := blockToXML(b, ctx); x != nil {
			root.AddChild(x)
		}
	}
}
