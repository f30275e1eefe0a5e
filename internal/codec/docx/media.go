package docx

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/vortex/wordcore/internal/codec/opc"
	"github.com/vortex/wordcore/internal/model"
)

// harvestMedia collects every part under word/media/ into the model's
// media registry, returning a lookup from the opc.Part back to the
// minted asset id so drawingFromXML can resolve r:embed targets.
func harvestMedia(pkg *opc.OpcPackage) (map[string]*model.MediaAsset, map[opc.Part]string) {
	media := map[string]*model.MediaAsset{}
	byPart := map[opc.Part]string{}
	n := 0
	for _, part := range pkg.Parts() {
		if !strings.HasPrefix(string(part.PartName()), "/word/media/") {
			continue
		}
		n++
		id := "media" + strconv.Itoa(n)
		blob, err := part.Blob()
		if err != nil {
			continue
		}
		ct := part.ContentType()
		if ct == "" {
			ct = contentTypeForExtension(part.PartName().Ext())
		}
		media[id] = &model.MediaAsset{
			ID:          id,
			ContentType: ct,
			Data:        blob,
			FileName:    path.Base(string(part.PartName())),
		}
		byPart[part] = id
	}
	return media, byPart
}

// registerMediaParts creates a word/media/ part for every asset and returns
// the id-to-part lookup drawingToXML needs to mint r:embed relationships.
// Iterates assets in id order so output packages are deterministic.
func registerMediaParts(pkg *opc.OpcPackage, media map[string]*model.MediaAsset) map[string]opc.Part {
	out := map[string]opc.Part{}
	ids := make([]string, 0, len(media))
	for id := range media {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		asset := media[id]
		ext := extensionForContentType(asset.ContentType)
		name := pkg.NextPartname("/word/media", "image", ext)
		part := opc.NewBasePart(name, asset.ContentType, asset.Data)
		pkg.AddPart(part)
		out[id] = part
	}
	return out
}
