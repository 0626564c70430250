package edmval

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
)

var quiet = validator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// TestLoadAndValidate tests the high-level API
func TestLoadAndValidate(t *testing.T) {
	model, err := LoadAndValidate([]string{"testdata/sales.yaml"}, quiet)
	if err != nil {
		t.Fatalf("LoadAndValidate() failed: %v", err)
	}

	if model.FindType("Sales.Customer") == nil {
		t.Error("Sales.Customer not found in loaded model")
	}
}

func TestLoadAndValidateBytes(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantCodes []edmErrors.ErrorCode
	}{
		{
			name: "valid",
			yaml: `
namespace: Sales
types:
  - name: Product
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32, nullable: false}
`,
		},
		{
			name: "missing key",
			yaml: `
namespace: Sales
types:
  - name: Product
    properties:
      - {name: ID, type: Edm.Int32, nullable: false}
`,
			wantCodes: []edmErrors.ErrorCode{edmErrors.KeyMissingOnEntityType},
		},
		{
			name: "nullable key",
			yaml: `
namespace: Sales
types:
  - name: Product
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32}
`,
			wantCodes: []edmErrors.ErrorCode{edmErrors.InvalidKeyNullablePart},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAndValidateBytes([]byte(tt.yaml), "memory://test", quiet)
			if len(tt.wantCodes) == 0 {
				if err != nil {
					t.Fatalf("LoadAndValidateBytes() failed: %v", err)
				}
				return
			}

			var list *edmErrors.ErrorList
			if !errors.As(err, &list) {
				t.Fatalf("error = %v, want *ErrorList", err)
			}
			for _, code := range tt.wantCodes {
				if !list.HasCode(code) {
					t.Errorf("missing error code %s in %v", code, list)
				}
			}
		})
	}
}

func TestLoadAndValidate_VersionOption(t *testing.T) {
	yaml := []byte(`
namespace: Sales
types:
  - name: Product
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32, nullable: false}
      - {name: name, type: Edm.String}
      - {name: Name, type: Edm.String}
`)

	if _, err := LoadAndValidateBytes(yaml, "memory://test", quiet); err != nil {
		t.Fatalf("4.0 validation failed: %v", err)
	}

	_, err := LoadAndValidateBytes(yaml, "memory://test", quiet, validator.WithVersion(edm.Version4_01))
	var list *edmErrors.ErrorList
	if !errors.As(err, &list) || !list.HasCode(edmErrors.CaseInsensitivePropertyNameConflict) {
		t.Errorf("4.01 validation error = %v, want CaseInsensitivePropertyNameConflict", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(); err == nil {
		t.Error("Load() with no files succeeded")
	}
	if _, err := Load("testdata/missing.yaml"); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

// BenchmarkLoadAndValidate benchmarks loading + validation
func BenchmarkLoadAndValidate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := LoadAndValidate([]string{"testdata/sales.yaml"}, quiet); err != nil {
			b.Fatal(err)
		}
	}
}
