package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// notesFromXML reads footnotes.xml/endnotes.xml, dropping the built-in
// separator/continuationSeparator entries and ids -1/0 per spec.md
// §4.5.1 step 6 — those exist only to carry the separator mark glyph and
// have no modeled equivalent.
func notesFromXML(root *etree.Element, noteTag string, ctx *importCtx) *model.NotesRegistry {
	reg := &model.NotesRegistry{}
	for _, n := range oxml.FindElements(root, noteTag) {
		idStr := oxml.Attr(n, "w:id")
		if id, err := strconv.Atoi(idStr); err == nil && (id == -1 || id == 0) {
			continue
		}
		switch oxml.Attr(n, "w:type") {
		case "separator", "continuationSeparator":
			continue
		}
		note := model.Note{ID: idStr, Type: model.NoteNormal}
		for _, p := range n.ChildElements() {
			if p.Space == "w" && p.Tag == "p" {
				note.Blocks = append(note.Blocks, paragraphFromXML(p, ctx))
			}
		}
		reg.Notes = append(reg.Notes, note)
	}
	return reg
}

func notesToXML(reg *model.NotesRegistry, rootTag, noteTag string, ctx *exportCtx) *etree.Element {
	root := oxml.OxmlElement(rootTag, "r", "wp", "a", "pic")
	for _, note := range reg.Notes {
		n := oxml.Child(root, noteTag)
		oxml.SetAttr(n, "w:id", note.ID)
		for _, p := range note.Blocks {
			n.AddChild(paragraphToXML(p, ctx))
		}
	}
	return root
}
