package opc

import "testing"

func TestNormalizeRelType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://purl.oclc.org/ooxml/officeDocument/relationships/styles", RTStyles},
		{"http://purl.oclc.org/ooxml/officeDocument/relationships/officeDocument", RTOfficeDocument},
		{RTImage, RTImage},
		{"http://example.com/custom", "http://example.com/custom"},
	}
	for _, c := range cases {
		if got := NormalizeRelType(c.in); got != c.want {
			t.Errorf("NormalizeRelType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
