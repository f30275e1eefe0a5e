package opc

import "testing"

func TestXmlPartParsesAndReserializes(t *testing.T) {
	part, err := NewXmlPart("/word/styles.xml", CTWmlStyles, []byte(stylesXml))
	if err != nil {
		t.Fatalf("NewXmlPart: %v", err)
	}
	if part.Element() == nil {
		t.Fatal("Element() = nil")
	}
	if got := part.Element().Tag; got != "styles" {
		t.Errorf("root tag = %q, want styles", got)
	}

	blob, err := part.Blob()
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}
	reparsed, err := NewXmlPart("/word/styles.xml", CTWmlStyles, blob)
	if err != nil {
		t.Fatalf("re-parsing serialized blob: %v", err)
	}
	if reparsed.Element().Tag != "styles" {
		t.Errorf("round-tripped root tag = %q, want styles", reparsed.Element().Tag)
	}
}

func TestPartFactoryRegisteredContentType(t *testing.T) {
	factory := NewPartFactory()
	factory.Register(CTWmlStyles, func(name PackURI, contentType, relType string, blob []byte) (Part, error) {
		return NewXmlPart(name, contentType, blob)
	})

	part, err := factory.New("/word/styles.xml", CTWmlStyles, RTStyles, []byte(stylesXml))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := part.(*XmlPart); !ok {
		t.Errorf("got %T, want *XmlPart", part)
	}
}

func TestPartFactorySelectorTakesPrecedence(t *testing.T) {
	factory := NewPartFactory()
	factory.Register(CTXml, func(name PackURI, contentType, relType string, blob []byte) (Part, error) {
		return NewBasePart(name, contentType, blob), nil
	})
	factory.SetSelector(func(contentType, relType string) PartConstructor {
		if relType == RTImage {
			return func(name PackURI, contentType, relType string, blob []byte) (Part, error) {
				return NewBasePart(name, "image/selected", blob), nil
			}
		}
		return nil
	})

	part, err := factory.New("/word/media/image1.png", "image/png", RTImage, []byte("data"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if part.ContentType() != "image/selected" {
		t.Errorf("ContentType() = %q, want image/selected (selector should win)", part.ContentType())
	}
}

func TestPartFactoryDefaultFallback(t *testing.T) {
	factory := NewPartFactory()
	part, err := factory.New("/word/media/image1.png", "image/png", RTImage, []byte("data"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := part.(*BasePart); !ok {
		t.Errorf("got %T, want *BasePart fallback", part)
	}
}
