package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/wordcore/internal/codec/oxml"
	"github.com/vortex/wordcore/internal/model"
)

func settingsFromXML(root *etree.Element) model.Settings {
	s := model.Settings{}
	if el := oxml.FindElement(root, "w:defaultTabStop"); el != nil {
		s.DefaultTabStop, _ = strconv.Atoi(oxml.Attr(el, "w:val"))
	}
	if oxml.FindElement(root, "w:evenAndOddHeaders") != nil {
		s.EvenAndOddHeaders = true
	}
	if oxml.FindElement(root, "w:trackChanges") != nil {
		s.TrackRevisions = true
	}
	return s
}

func settingsToXML(s model.Settings) *etree.Element {
	root := oxml.OxmlElement("w:settings")
	if s.TrackRevisions {
		oxml.Child(root, "w:trackChanges")
	}
	if s.EvenAndOddHeaders {
		oxml.Child(root, "w:evenAndOddHeaders")
	}
	if s.DefaultTabStop != 0 {
		oxml.SetAttr(oxml.Child(root, "w:defaultTabStop"), "w:val", strconv.Itoa(s.DefaultTabStop))
	}
	return root
}
