package docx

import (
	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

func commentsFromXML(root *etree.Element, ctx *importCtx) *model.CommentsRegistry {
	reg := &model.CommentsRegistry{}
	for _, c := range oxml.FindElements(root, "w:comment") {
		cm := model.Comment{
			ID:       oxml.Attr(c, "w:id"),
			Author:   oxml.Attr(c, "w:author"),
			Initials: oxml.Attr(c, "w:initials"),
			Date:     oxml.Attr(c, "w:date"),
		}
		for _, p := range c.ChildElements() {
			if p.Space == "w" && p.Tag == "p" {
				cm.Blocks = append(cm.Blocks, paragraphFromXML(p, ctx))
			}
		}
		reg.Comments = append(reg.Comments, cm)
	}
	return reg
}

func commentsToXML(reg *model.CommentsRegistry, ctx *exportCtx) *etree.Element {
	root := oxml.OxmlElement("w:comments", "r", "wp", "a", "pic")
	for _, cm := range reg.Comments {
		c := oxml.Child(root, "w:comment")
		oxml.SetAttr(c, "w:id", cm.ID)
		oxml.SetAttr(c, "w:author", cm.Author)
		oxml.SetAttr(c, "w:initials", cm.Initials)
		oxml.SetAttr(c, "w:date", cm.Date)
		for _, p := range cm.Blocks {
			c.AddChild(paragraphToXML(p, ctx))
		}
	}
	return root
}
