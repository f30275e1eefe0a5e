package docx

import (
	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// styleTypeFromXML validates a w:type value against the closed
// model.StyleType set, returning "" for anything else so the caller can
// drop the style per spec.md §4.5.1 step 3.
func styleTypeFromXML(t string) string {
	switch t {
	case "paragraph", "character", "table", "numbering":
		return t
	default:
		return ""
	}
}

func stylesFromXML(root *etree.Element) *model.StylesRegistry {
	var styles []model.Style
	for _, s := range oxml.FindElements(root, "w:style") {
		id := oxml.Attr(s, "w:styleId")
		if id == "" {
			continue
		}
		t := styleTypeFromXML(oxml.Attr(s, "w:type"))
		if t == "" {
			continue
		}
		st := model.Style{ID: id, Type: model.StyleType(t), IsDefault: oxml.Attr(s, "w:default") == "1"}
		if name := oxml.FindElement(s, "w:name"); name != nil {
			st.Name = oxml.Attr(name, "w:val")
		}
		if bo := oxml.FindElement(s, "w:basedOn"); bo != nil {
			st.BasedOn = oxml.Attr(bo, "w:val")
		}
		if nx := oxml.FindElement(s, "w:next"); nx != nil {
			st.Next = oxml.Attr(nx, "w:val")
		}
		st.ParagraphProperties = paragraphPropertiesFromXML(oxml.FindElement(s, "w:pPr"))
		st.RunProperties = runPropertiesFromXML(oxml.FindElement(s, "w:rPr"))
		styles = append(styles, st)
	}
	return model.NewStylesRegistry(styles)
}

func stylesToXML(reg *model.StylesRegistry) *etree.Element {
	root := oxml.OxmlElement("w:styles")
	for _, st := range reg.All() {
		s := oxml.Child(root, "w:style")
		oxml.SetAttr(s, "w:type", string(st.Type))
		oxml.SetAttr(s, "w:styleId", st.ID)
		if st.IsDefault {
			oxml.SetAttr(s, "w:default", "1")
		}
		if st.Name != "" {
			oxml.SetAttr(oxml.Child(s, "w:name"), "w:val", st.Name)
		}
		if st.BasedOn != "" {
			oxml.SetAttr(oxml.Child(s, "w:basedOn"), "w:val", st.BasedOn)
		}
		if st.Next != "" {
			oxml.SetAttr(oxml.Child(s, "w:next"), "w:val", st.Next)
		}
		if pPr := paragraphPropertiesToXML(st.ParagraphProperties); pPr != nil {
			s.AddChild(pPr)
		}
		if rPr := runPropertiesToXML(st.RunProperties); rPr != nil {
			s.AddChild(rPr)
		}
	}
	return root
}
