package docx

import (
	"strings"

	"github.com/vortex/wordcore/internal/codec/opc"
)

// newPartFactory builds the part factory used to open a .docx package:
// every XML content type becomes an XmlPart so its root element is
// available without a second parse; everything else (media, and any part
// this codec doesn't recognize) falls back to BasePart. Grounded on the
// teacher's opc/part.go selector-by-content-type convention.
func newPartFactory() *opc.PartFactory {
	f := opc.NewPartFactory()
	f.SetSelector(func(contentType, relType string) opc.PartConstructor {
		if isXmlContentType(contentType) {
			return func(partName opc.PackURI, contentType, relType string, blob []byte) (opc.Part, error) {
				return opc.NewXmlPart(partName, contentType, blob)
			}
		}
		return nil
	})
	return f
}

func isXmlContentType(contentType string) bool {
	return strings.HasSuffix(contentType, "+xml") || contentType == opc.CTXml || contentType == opc.CTRelationships
}

// extensionForContentType returns the file extension used for a media
// content type, defaulting to "bin" for anything unrecognized.
func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	case "image/tiff":
		return "tiff"
	case "image/x-emf":
		return "emf"
	case "image/x-wmf":
		return "wmf"
	case "image/svg+xml":
		return "svg"
	default:
		return "bin"
	}
}

// contentTypeForExtension is extensionForContentType's inverse, used when
// harvesting media parts that have no [Content_Types].xml Override entry
// of their own (relying on the Default mapping instead).
func contentTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff", "tif":
		return "image/tiff"
	case "emf":
		return "image/x-emf"
	case "wmf":
		return "image/x-wmf"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
