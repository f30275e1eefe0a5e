package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

// This file converts between the w:rPr/w:pPr/w:sectPr/w:tblPr/w:tcPr
// element families and the model's typed property records. Every other
// part (document body, styles, headers/footers) shares these so a run's
// formatting parses and serializes identically wherever it appears.

func boolPtr(v bool) *bool { return &v }

// parseToggle reads an OOXML boolean toggle element (w:b, w:i, w:caps, …):
// present with no w:val, or w:val in {"1","true","on"}, means true;
// w:val in {"0","false","off"} means false; absent means unset.
func parseToggle(parent *etree.Element, tag string) *bool {
	el := oxml.FindElement(parent, tag)
	if el == nil {
		return nil
	}
	val := oxml.Attr(el, "w:val")
	if val == "" {
		return boolPtr(true)
	}
	switch val {
	case "0", "false", "off":
		return boolPtr(false)
	default:
		return boolPtr(true)
	}
}

func writeToggle(parent *etree.Element, tag string, v *bool) {
	if v == nil {
		return
	}
	el := oxml.Child(parent, tag)
	if !*v {
		oxml.SetAttr(el, "w:val", "0")
	}
}

func parseIntAttr(parent *etree.Element, tag, attr string) *int {
	el := oxml.FindElement(parent, tag)
	if el == nil {
		return nil
	}
	v := oxml.Attr(el, attr)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func runPropertiesFromXML(rPr *etree.Element) *model.RunProperties {
	if rPr == nil {
		return nil
	}
	rp := &model.RunProperties{
		Bold:          parseToggle(rPr, "w:b"),
		Italic:        parseToggle(rPr, "w:i"),
		Strikethrough: parseToggle(rPr, "w:strike"),
		AllCaps:       parseToggle(rPr, "w:caps"),
		SmallCaps:     parseToggle(rPr, "w:smallCaps"),
		FontSize:      parseIntAttr(rPr, "w:sz", "w:val"),
		LetterSpacing: parseIntAttr(rPr, "w:spacing", "w:val"),
	}
	if u := oxml.FindElement(rPr, "w:u"); u != nil {
		val := oxml.Attr(u, "w:val")
		under := model.UnderlineSingle
		switch val {
		case "none":
			under = model.UnderlineNone
		case "double":
			under = model.UnderlineDouble
		case "thick":
			under = model.UnderlineThick
		case "single", "":
			under = model.UnderlineSingle
		}
		rp.Underline = &under
	}
	if va := oxml.FindElement(rPr, "w:vertAlign"); va != nil {
		switch oxml.Attr(va, "w:val") {
		case "superscript":
			rp.Superscript = boolPtr(true)
		case "subscript":
			rp.Subscript = boolPtr(true)
		}
	}
	if fonts := oxml.FindElement(rPr, "w:rFonts"); fonts != nil {
		// Open question resolved per spec.md §9: ascii || hAnsi || cs,
		// losing information on re-export.
		name := oxml.Attr(fonts, "w:ascii")
		if name == "" {
			name = oxml.Attr(fonts, "w:hAnsi")
		}
		if name == "" {
			name = oxml.Attr(fonts, "w:cs")
		}
		if name != "" {
			rp.FontFamily = &name
		}
	}
	if color := oxml.FindElement(rPr, "w:color"); color != nil {
		if v := oxml.Attr(color, "w:val"); v != "" && v != "auto" {
			rp.Color = &v
		}
	}
	if shd := oxml.FindElement(rPr, "w:shd"); shd != nil {
		if v := oxml.Attr(shd, "w:fill"); v != "" && v != "auto" {
			rp.BackgroundColor = &v
		}
	}
	if hl := oxml.FindElement(rPr, "w:highlight"); hl != nil {
		if v := oxml.Attr(hl, "w:val"); v != "" {
			rp.Highlight = &v
		}
	}
	if lang := oxml.FindElement(rPr, "w:lang"); lang != nil {
		if v := oxml.Attr(lang, "w:val"); v != "" {
			rp.Language = &v
		}
	}
	if style := oxml.FindElement(rPr, "w:rStyle"); style != nil {
		if v := oxml.Attr(style, "w:val"); v != "" {
			rp.StyleID = &v
		}
	}
	if *rp == (model.RunProperties{}) {
		return nil
	}
	return rp
}

func runPropertiesToXML(rp *model.RunProperties) *etree.Element {
	if rp == nil {
		return nil
	}
	rPr := oxml.OxmlElement("w:rPr")
	if rp.StyleID != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:rStyle"), "w:val", *rp.StyleID)
	}
	if rp.FontFamily != nil {
		fonts := oxml.Child(rPr, "w:rFonts")
		oxml.SetAttr(fonts, "w:ascii", *rp.FontFamily)
		oxml.SetAttr(fonts, "w:hAnsi", *rp.FontFamily)
		oxml.SetAttr(fonts, "w:cs", *rp.FontFamily)
	}
	writeToggle(rPr, "w:b", rp.Bold)
	writeToggle(rPr, "w:i", rp.Italic)
	writeToggle(rPr, "w:strike", rp.Strikethrough)
	writeToggle(rPr, "w:caps", rp.AllCaps)
	writeToggle(rPr, "w:smallCaps", rp.SmallCaps)
	if rp.Color != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:color"), "w:val", *rp.Color)
	}
	if rp.BackgroundColor != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:shd"), "w:fill", *rp.BackgroundColor)
	}
	if rp.Highlight != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:highlight"), "w:val", *rp.Highlight)
	}
	if rp.Underline != nil {
		val := string(*rp.Underline)
		if val == "" {
			val = "single"
		}
		oxml.SetAttr(oxml.Child(rPr, "w:u"), "w:val", val)
	}
	if rp.Superscript != nil && *rp.Superscript {
		oxml.SetAttr(oxml.Child(rPr, "w:vertAlign"), "w:val", "superscript")
	}
	if rp.Subscript != nil && *rp.Subscript {
		oxml.SetAttr(oxml.Child(rPr, "w:vertAlign"), "w:val", "subscript")
	}
	if rp.FontSize != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:sz"), "w:val", strconv.Itoa(*rp.FontSize))
	}
	if rp.LetterSpacing != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:spacing"), "w:val", strconv.Itoa(*rp.LetterSpacing))
	}
	if rp.Language != nil {
		oxml.SetAttr(oxml.Child(rPr, "w:lang"), "w:val", *rp.Language)
	}
	if len(rPr.ChildElements()) == 0 {
		return nil
	}
	return rPr
}

func alignmentFromXML(val string) model.Alignment {
	switch val {
	case "both":
		return model.AlignJustify
	case "start":
		return model.AlignLeft
	case "end":
		return model.AlignRight
	case "distribute":
		return model.AlignDistribute
	default:
		return model.Alignment(val)
	}
}

func alignmentToXML(a model.Alignment) string {
	if a == model.AlignJustify {
		return "both"
	}
	return string(a)
}

func paragraphPropertiesFromXML(pPr *etree.Element) *model.ParagraphProperties {
	if pPr == nil {
		return nil
	}
	pp := &model.ParagraphProperties{
		OutlineLevel:    parseIntAttr(pPr, "w:outlineLvl", "w:val"),
		KeepNext:        parseToggle(pPr, "w:keepNext"),
		KeepLines:       parseToggle(pPr, "w:keepLines"),
		PageBreakBefore: parseToggle(pPr, "w:pageBreakBefore"),
		WidowControl:    parseToggle(pPr, "w:widowControl"),
	}
	if style := oxml.FindElement(pPr, "w:pStyle"); style != nil {
		if v := oxml.Attr(style, "w:val"); v != "" {
			pp.StyleID = &v
		}
	}
	if jc := oxml.FindElement(pPr, "w:jc"); jc != nil {
		a := alignmentFromXML(oxml.Attr(jc, "w:val"))
		pp.Alignment = &a
	}
	if sp := oxml.FindElement(pPr, "w:spacing"); sp != nil {
		pp.Spacing = spacingFromXML(sp)
	}
	if ind := oxml.FindElement(pPr, "w:ind"); ind != nil {
		pp.Indent = indentFromXML(ind)
	}
	if numPr := oxml.FindElement(pPr, "w:numPr"); numPr != nil {
		n := model.Numbering{}
		if ilvl := oxml.FindElement(numPr, "w:ilvl"); ilvl != nil {
			n.Level, _ = strconv.Atoi(oxml.Attr(ilvl, "w:val"))
		}
		if numId := oxml.FindElement(numPr, "w:numId"); numId != nil {
			n.NumID, _ = strconv.Atoi(oxml.Attr(numId, "w:val"))
		}
		pp.Numbering = &n
	}
	if shd := oxml.FindElement(pPr, "w:shd"); shd != nil {
		if v := oxml.Attr(shd, "w:fill"); v != "" && v != "auto" {
			pp.Shading = &v
		}
	}
	if bdr := oxml.FindElement(pPr, "w:pBdr"); bdr != nil {
		pp.Borders = bordersFromXML(bdr, false)
	}
	for _, tabsEl := range oxml.FindElements(pPr, "w:tabs/w:tab") {
		pos, _ := strconv.Atoi(oxml.Attr(tabsEl, "w:pos"))
		pp.Tabs = append(pp.Tabs, model.Tab{
			Position: pos,
			Align:    oxml.Attr(tabsEl, "w:val"),
			Leader:   oxml.Attr(tabsEl, "w:leader"),
		})
	}
	pp.RunProperties = runPropertiesFromXML(oxml.FindElement(pPr, "w:rPr"))
	return pp
}

func paragraphPropertiesToXML(pp *model.ParagraphProperties) *etree.Element {
	if pp == nil {
		return nil
	}
	pPr := oxml.OxmlElement("w:pPr")
	if pp.StyleID != nil {
		oxml.SetAttr(oxml.Child(pPr, "w:pStyle"), "w:val", *pp.StyleID)
	}
	if pp.Numbering != nil {
		numPr := oxml.Child(pPr, "w:numPr")
		oxml.SetAttr(oxml.Child(numPr, "w:ilvl"), "w:val", strconv.Itoa(pp.Numbering.Level))
		oxml.SetAttr(oxml.Child(numPr, "w:numId"), "w:val", strconv.Itoa(pp.Numbering.NumID))
	}
	writeToggle(pPr, "w:keepNext", pp.KeepNext)
	writeToggle(pPr, "w:keepLines", pp.KeepLines)
	writeToggle(pPr, "w:pageBreakBefore", pp.PageBreakBefore)
	writeToggle(pPr, "w:widowControl", pp.WidowControl)
	if pp.Borders != nil {
		bordersToXML(oxml.Child(pPr, "w:pBdr"), pp.Borders, false)
	}
	if pp.Shading != nil {
		oxml.SetAttr(oxml.Child(pPr, "w:shd"), "w:fill", *pp.Shading)
	}
	if pp.Spacing != nil {
		spacingToXML(oxml.Child(pPr, "w:spacing"), pp.Spacing)
	}
	if pp.Indent != nil {
		indentToXML(oxml.Child(pPr, "w:ind"), pp.Indent)
	}
	if len(pp.Tabs) > 0 {
		tabs := oxml.Child(pPr, "w:tabs")
		for _, t := range pp.Tabs {
			tab := oxml.Child(tabs, "w:tab")
			oxml.SetAttr(tab, "w:val", t.Align)
			oxml.SetAttr(tab, "w:leader", t.Leader)
			oxml.SetAttr(tab, "w:pos", strconv.Itoa(t.Position))
		}
	}
	if pp.OutlineLevel != nil {
		oxml.SetAttr(oxml.Child(pPr, "w:outlineLvl"), "w:val", strconv.Itoa(*pp.OutlineLevel))
	}
	if pp.Alignment != nil {
		oxml.SetAttr(oxml.Child(pPr, "w:jc"), "w:val", alignmentToXML(*pp.Alignment))
	}
	if rPr := runPropertiesToXML(pp.RunProperties); rPr != nil {
		pPr.AddChild(rPr)
	}
	if len(pPr.ChildElements()) == 0 {
		return nil
	}
	return pPr
}

func spacingFromXML(el *etree.Element) *model.Spacing {
	s := &model.Spacing{}
	if v := oxml.Attr(el, "w:before"); v != "" {
		n, _ := strconv.Atoi(v)
		s.Before = &n
	}
	if v := oxml.Attr(el, "w:after"); v != "" {
		n, _ := strconv.Atoi(v)
		s.After = &n
	}
	if v := oxml.Attr(el, "w:line"); v != "" {
		n, _ := strconv.Atoi(v)
		s.Line = &n
	}
	if v := oxml.Attr(el, "w:lineRule"); v != "" {
		s.LineRule = &v
	}
	return s
}

func spacingToXML(el *etree.Element, s *model.Spacing) {
	if s.Before != nil {
		oxml.SetAttr(el, "w:before", strconv.Itoa(*s.Before))
	}
	if s.After != nil {
		oxml.SetAttr(el, "w:after", strconv.Itoa(*s.After))
	}
	if s.Line != nil {
		oxml.SetAttr(el, "w:line", strconv.Itoa(*s.Line))
	}
	if s.LineRule != nil {
		oxml.SetAttr(el, "w:lineRule", *s.LineRule)
	}
}

func indentFromXML(el *etree.Element) *model.Indent {
	i := &model.Indent{}
	left := oxml.Attr(el, "w:left")
	if left == "" {
		left = oxml.Attr(el, "w:start")
	}
	if left != "" {
		n, _ := strconv.Atoi(left)
		i.Left = &n
	}
	right := oxml.Attr(el, "w:right")
	if right == "" {
		right = oxml.Attr(el, "w:end")
	}
	if right != "" {
		n, _ := strconv.Atoi(right)
		i.Right = &n
	}
	if v := oxml.Attr(el, "w:firstLine"); v != "" {
		n, _ := strconv.Atoi(v)
		i.FirstLine = &n
	}
	if v := oxml.Attr(el, "w:hanging"); v != "" {
		n, _ := strconv.Atoi(v)
		i.Hanging = &n
	}
	return i
}

func indentToXML(el *etree.Element, i *model.Indent) {
	if i.Left != nil {
		oxml.SetAttr(el, "w:left", strconv.Itoa(*i.Left))
	}
	if i.Right != nil {
		oxml.SetAttr(el, "w:right", strconv.Itoa(*i.Right))
	}
	if i.FirstLine != nil {
		oxml.SetAttr(el, "w:firstLine", strconv.Itoa(*i.FirstLine))
	}
	if i.Hanging != nil {
		oxml.SetAttr(el, "w:hanging", strconv.Itoa(*i.Hanging))
	}
}

func bordersFromXML(el *etree.Element, withBetween bool) *model.Borders {
	b := &model.Borders{
		Top:    borderSideFromXML(oxml.FindElement(el, "w:top")),
		Bottom: borderSideFromXML(oxml.FindElement(el, "w:bottom")),
		Left:   borderSideFromXML(oxml.FindElement(el, "w:left")),
		Right:  borderSideFromXML(oxml.FindElement(el, "w:right")),
	}
	if withBetween {
		b.Between = borderSideFromXML(oxml.FindElement(el, "w:between"))
	}
	return b
}

func borderSideFromXML(el *etree.Element) *model.Border {
	if el == nil {
		return nil
	}
	sz, _ := strconv.Atoi(oxml.Attr(el, "w:sz"))
	return &model.Border{Style: oxml.Attr(el, "w:val"), Size: sz, Color: oxml.Attr(el, "w:color")}
}

func bordersToXML(el *etree.Element, b *model.Borders, withBetween bool) {
	borderSideToXML(el, "w:top", b.Top)
	borderSideToXML(el, "w:bottom", b.Bottom)
	borderSideToXML(el, "w:left", b.Left)
	borderSideToXML(el, "w:right", b.Right)
	if withBetween {
		borderSideToXML(el, "w:between", b.Between)
	}
}

func borderSideToXML(parent *etree.Element, tag string, b *model.Border) {
	if b == nil {
		return
	}
	side := oxml.Child(parent, tag)
	oxml.SetAttr(side, "w:val", b.Style)
	oxml.SetAttr(side, "w:sz", strconv.Itoa(b.Size))
	oxml.SetAttr(side, "w:color", b.Color)
}

func tablePropertiesFromXML(tbl *etree.Element) model.TableProperties {
	tp := model.TableProperties{}
	if tblPr := oxml.FindElement(tbl, "w:tblPr"); tblPr != nil {
		if style := oxml.FindElement(tblPr, "w:tblStyle"); style != nil {
			if v := oxml.Attr(style, "w:val"); v != "" {
				tp.StyleID = &v
			}
		}
		if w := oxml.FindElement(tblPr, "w:tblW"); w != nil {
			if v := oxml.Attr(w, "w:w"); v != "" {
				n, _ := strconv.Atoi(v)
				tp.Width = &n
			}
		}
	}
	if grid := oxml.FindElement(tbl, "w:tblGrid"); grid != nil {
		for _, col := range oxml.FindElements(grid, "w:gridCol") {
			n, _ := strconv.Atoi(oxml.Attr(col, "w:w"))
			tp.ColumnWidths = append(tp.ColumnWidths, n)
		}
	}
	return tp
}

func tablePropertiesToXML(tbl *etree.Element, tp model.TableProperties) {
	tblPr := oxml.Child(tbl, "w:tblPr")
	if tp.StyleID != nil {
		oxml.SetAttr(oxml.Child(tblPr, "w:tblStyle"), "w:val", *tp.StyleID)
	}
	if tp.Width != nil {
		oxml.SetAttr(oxml.Child(tblPr, "w:tblW"), "w:w", strconv.Itoa(*tp.Width))
	}
	if len(tblPr.ChildElements()) == 0 {
		tbl.RemoveChild(tblPr)
	}
	if len(tp.ColumnWidths) > 0 {
		grid := oxml.Child(tbl, "w:tblGrid")
		for _, w := range tp.ColumnWidths {
			oxml.SetAttr(oxml.Child(grid, "w:gridCol"), "w:w", strconv.Itoa(w))
		}
	}
}

func tableCellPropertiesFromXML(tcPr *etree.Element) model.TableCellProperties {
	tcp := model.TableCellProperties{GridSpan: 1}
	if tcPr == nil {
		return tcp
	}
	if gs := oxml.FindElement(tcPr, "w:gridSpan"); gs != nil {
		if n, err := strconv.Atoi(oxml.Attr(gs, "w:val")); err == nil && n > 0 {
			tcp.GridSpan = n
		}
	}
	if w := oxml.FindElement(tcPr, "w:tcW"); w != nil {
		if v := oxml.Attr(w, "w:w"); v != "" {
			n, _ := strconv.Atoi(v)
			tcp.Width = &n
		}
	}
	if shd := oxml.FindElement(tcPr, "w:shd"); shd != nil {
		if v := oxml.Attr(shd, "w:fill"); v != "" && v != "auto" {
			tcp.Shading = &v
		}
	}
	if va := oxml.FindElement(tcPr, "w:vAlign"); va != nil {
		if v := oxml.Attr(va, "w:val"); v != "" {
			tcp.VAlign = &v
		}
	}
	return tcp
}

func tableCellPropertiesToXML(cell *etree.Element, tcp model.TableCellProperties) {
	tcPr := oxml.Child(cell, "w:tcPr")
	if tcp.GridSpan > 1 {
		oxml.SetAttr(oxml.Child(tcPr, "w:gridSpan"), "w:val", strconv.Itoa(tcp.GridSpan))
	}
	if tcp.Width != nil {
		oxml.SetAttr(oxml.Child(tcPr, "w:tcW"), "w:w", strconv.Itoa(*tcp.Width))
	}
	if tcp.Shading != nil {
		oxml.SetAttr(oxml.Child(tcPr, "w:shd"), "w:fill", *tcp.Shading)
	}
	if tcp.VAlign != nil {
		oxml.SetAttr(oxml.Child(tcPr, "w:vAlign"), "w:val", *tcp.VAlign)
	}
	if len(tcPr.ChildElements()) == 0 {
		cell.RemoveChild(tcPr)
	}
}
