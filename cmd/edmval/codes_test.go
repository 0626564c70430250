package main

import (
	"testing"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

func TestSelectCodes(t *testing.T) {
	all := selectCodes(false)
	if len(all) != len(edmErrors.Codes()) {
		t.Errorf("selectCodes(false) = %d codes, want %d", len(all), len(edmErrors.Codes()))
	}

	critical := selectCodes(true)
	if len(critical) == 0 {
		t.Fatal("expected interface-critical codes")
	}
	for _, c := range critical {
		if !c.Critical {
			t.Errorf("code %s is not critical", c.Name)
		}
	}
	if len(critical) >= len(all) {
		t.Errorf("critical codes (%d) should be a strict subset of all codes (%d)", len(critical), len(all))
	}
}
