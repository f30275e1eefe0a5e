package docx

import (
	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// defaultTheme is the Office default color scheme, used per spec.md
// §4.5.1 step 5 when a package carries no word/theme/theme1.xml.
func defaultTheme() *model.Theme {
	return &model.Theme{Colors: []model.ThemeColor{
		{Name: "dk1", Hex: "000000"},
		{Name: "lt1", Hex: "FFFFFF"},
		{Name: "dk2", Hex: "1F497D"},
		{Name: "lt2", Hex: "EEECE1"},
		{Name: "accent1", Hex: "4F81BD"},
		{Name: "accent2", Hex: "C0504D"},
		{Name: "accent3", Hex: "9BBB59"},
		{Name: "accent4", Hex: "8064A2"},
		{Name: "accent5", Hex: "4BACC6"},
		{Name: "accent6", Hex: "F79646"},
		{Name: "hlink", Hex: "0000FF"},
		{Name: "folHlink", Hex: "800080"},
	}}
}

func themeFromXML(root *etree.Element) *model.Theme {
	scheme := oxml.FindElement(root, "a:themeElements/a:clrScheme")
	if scheme == nil {
		return defaultTheme()
	}
	t := &model.Theme{}
	for _, c := range scheme.ChildElements() {
		hex := ""
		if srgb := oxml.FindElement(c, "a:srgbClr"); srgb != nil {
			hex = oxml.Attr(srgb, "val")
		} else if sys := oxml.FindElement(c, "a:sysClr"); sys != nil {
			hex = oxml.Attr(sys, "lastClr")
		}
		if hex != "" {
			t.Colors = append(t.Colors, model.ThemeColor{Name: c.Tag, Hex: hex})
		}
	}
	if len(t.Colors) == 0 {
		return defaultTheme()
	}
	return t
}

func themeToXML(t *model.Theme) *etree.Element {
	root := oxml.OxmlElement("a:theme")
	oxml.SetAttr(root, "name", "Office Theme")
	scheme := oxml.Child(oxml.Child(root, "a:themeElements"), "a:clrScheme")
	oxml.SetAttr(scheme, "name", "Office")
	for _, c := range t.Colors {
		slot := oxml.Child(scheme, "a:"+c.Name)
		if c.Name == "dk1" || c.Name == "lt1" {
			sys := oxml.Child(slot, "a:sysClr")
			val := "window"
			if c.Name == "dk1" {
				val = "windowText"
			}
			oxml.SetAttr(sys, "val", val)
			oxml.SetAttr(sys, "lastClr", c.Hex)
			continue
		}
		oxml.SetAttr(oxml.Child(slot, "a:srgbClr"), "val", c.Hex)
	}
	return root
}
