package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// numberFormatFromXML maps an unrecognized w:numFmt value to decimal per
// spec.md §4.5.1 step 4.
func numberFormatFromXML(v string) model.NumberFormat {
	switch model.NumberFormat(v) {
	case model.FormatDecimal, model.FormatLowerLetter, model.FormatUpperLetter,
		model.FormatLowerRoman, model.FormatUpperRoman, model.FormatBullet, model.FormatNone:
		return model.NumberFormat(v)
	default:
		return model.FormatDecimal
	}
}

func numberingFromXML(root *etree.Element) *model.NumberingRegistry {
	reg := &model.NumberingRegistry{}
	for _, an := range oxml.FindElements(root, "w:abstractNum") {
		id, _ := strconv.Atoi(oxml.Attr(an, "w:abstractNumId"))
		abstract := model.AbstractNumbering{AbstractNumID: id}
		for _, lvl := range oxml.FindElements(an, "w:lvl") {
			nl := model.NumberingLevel{Level: atoiAttr(lvl, "w:ilvl")}
			if start := oxml.FindElement(lvl, "w:start"); start != nil {
				nl.Start, _ = strconv.Atoi(oxml.Attr(start, "w:val"))
			}
			if fmtEl := oxml.FindElement(lvl, "w:numFmt"); fmtEl != nil {
				nl.Format = numberFormatFromXML(oxml.Attr(fmtEl, "w:val"))
			} else {
				nl.Format = model.FormatDecimal
			}
			if txt := oxml.FindElement(lvl, "w:lvlText"); txt != nil {
				nl.Text = oxml.Attr(txt, "w:val")
			}
			if jc := oxml.FindElement(lvl, "w:lvlJc"); jc != nil {
				nl.Alignment = oxml.Attr(jc, "w:val")
			}
			if ind := oxml.FindElement(lvl, "w:pPr/w:ind"); ind != nil {
				if v := oxml.Attr(ind, "w:left"); v != "" {
					nl.Indent, _ = strconv.Atoi(v)
				}
				if v := oxml.Attr(ind, "w:hanging"); v != "" {
					nl.HangingIndent, _ = strconv.Atoi(v)
				}
			}
			if fonts := oxml.FindElement(lvl, "w:rPr/w:rFonts"); fonts != nil {
				nl.Font = oxml.Attr(fonts, "w:ascii")
			}
			abstract.Levels = append(abstract.Levels, nl)
		}
		reg.Abstracts = append(reg.Abstracts, abstract)
	}
	for _, num := range oxml.FindElements(root, "w:num") {
		inst := model.NumberingInstance{NumID: atoiAttr(num, "w:numId")}
		if an := oxml.FindElement(num, "w:abstractNumId"); an != nil {
			inst.AbstractNumID, _ = strconv.Atoi(oxml.Attr(an, "w:val"))
		}
		for _, ov := range oxml.FindElements(num, "w:lvlOverride") {
			override := model.NumberingInstanceOverride{Level: atoiAttr(ov, "w:ilvl")}
			if so := oxml.FindElement(ov, "w:startOverride"); so != nil {
				override.StartAt, _ = strconv.Atoi(oxml.Attr(so, "w:val"))
			}
			inst.Overrides = append(inst.Overrides, override)
		}
		reg.Instances = append(reg.Instances, inst)
	}
	return reg
}

func numberingToXML(reg *model.NumberingRegistry) *etree.Element {
	root := oxml.OxmlElement("w:numbering")
	for _, a := range reg.Abstracts {
		an := oxml.Child(root, "w:abstractNum")
		oxml.SetAttr(an, "w:abstractNumId", strconv.Itoa(a.AbstractNumID))
		for _, lvl := range a.Levels {
			l := oxml.Child(an, "w:lvl")
			oxml.SetAttr(l, "w:ilvl", strconv.Itoa(lvl.Level))
			oxml.SetAttr(oxml.Child(l, "w:start"), "w:val", strconv.Itoa(lvl.Start))
			oxml.SetAttr(oxml.Child(l, "w:numFmt"), "w:val", string(lvl.Format))
			oxml.SetAttr(oxml.Child(l, "w:lvlText"), "w:val", lvl.Text)
			if lvl.Alignment != "" {
				oxml.SetAttr(oxml.Child(l, "w:lvlJc"), "w:val", lvl.Alignment)
			}
			if lvl.Indent != 0 || lvl.HangingIndent != 0 {
				ind := oxml.Child(oxml.Child(l, "w:pPr"), "w:ind")
				if lvl.Indent != 0 {
					oxml.SetAttr(ind, "w:left", strconv.Itoa(lvl.Indent))
				}
				if lvl.HangingIndent != 0 {
					oxml.SetAttr(ind, "w:hanging", strconv.Itoa(lvl.HangingIndent))
				}
			}
			if lvl.Font != "" {
				oxml.SetAttr(oxml.Child(oxml.Child(l, "w:rPr"), "w:rFonts"), "w:ascii", lvl.Font)
			}
		}
	}
	for _, inst := range reg.Instances {
		num := oxml.Child(root, "w:num")
		oxml.SetAttr(num, "w:numId", strconv.Itoa(inst.NumID))
		oxml.SetAttr(oxml.Child(num, "w:abstractNumId"), "w:val", strconv.Itoa(inst.AbstractNumID))
		for _, ov := range inst.Overrides {
			lo := oxml.Child(num, "w:lvlOverride")
			oxml.SetAttr(lo, "w:ilvl", strconv.Itoa(ov.Level))
			oxml.SetAttr(oxml.Child(lo, "w:startOverride"), "w:val", strconv.Itoa(ov.StartAt))
		}
	}
	return root
}
