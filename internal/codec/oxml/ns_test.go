package oxml

import "testing"

func TestQn(t *testing.T) {
	got := Qn("w:p")
	want := "{http://schemas.openxmlformats.org/wordprocessingml/2006/main}p"
	if got != want {
		t.Errorf("Qn(w:p) = %q, want %q", got, want)
	}
}

func TestQnNoPrefix(t *testing.T) {
	if got := Qn("simpleTag"); got != "simpleTag" {
		t.Errorf("Qn(simpleTag) = %q", got)
	}
}

func TestQnPanicsOnUnknownPrefix(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown prefix")
		}
	}()
	Qn("zzz:tag")
}

func TestTryQnUnknownPrefix(t *testing.T) {
	if _, err := TryQn("zzz:tag"); err == nil {
		t.Error("expected error for unknown prefix")
	}
}

func TestLocalNameAndPrefix(t *testing.T) {
	if LocalName("w:p") != "p" {
		t.Errorf("LocalName(w:p) = %q", LocalName("w:p"))
	}
	if Prefix("w:p") != "w" {
		t.Errorf("Prefix(w:p) = %q", Prefix("w:p"))
	}
	if LocalName("p") != "p" || Prefix("p") != "" {
		t.Error("unprefixed tag should pass through")
	}
}

func TestPfxmapIsInverseOfNsmap(t *testing.T) {
	for pfx, uri := range Nsmap {
		got, ok := Pfxmap[uri]
		if !ok || got != pfx {
			t.Errorf("Pfxmap[%q] = %q, ok=%v, want %q", uri, got, ok, pfx)
		}
	}
}
