package main

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/edm"
	"github.com/OData/odata.net-sub135/pkg/report"
	"github.com/OData/odata.net-sub135/pkg/report/storage"
)

func TestCollectFiles(t *testing.T) {
	extensions := []string{".yaml", ".yml"}

	tests := []struct {
		name    string
		files   []string
		dir     string
		want    []string
		wantErr bool
	}{
		{
			name:  "explicit files keep their order",
			files: []string{"b.yaml", "a.yaml"},
			want:  []string{"b.yaml", "a.yaml"},
		},
		{
			name: "directory is filtered and sorted",
			dir:  "testdata",
			want: []string{
				filepath.Join("testdata", "common.yaml"),
				filepath.Join("testdata", "nokey.yaml"),
				filepath.Join("testdata", "people.yaml"),
				filepath.Join("testdata", "product.yaml"),
			},
		},
		{
			name:    "nothing given",
			wantErr: true,
		},
		{
			name:    "missing directory",
			dir:     "testdata/missing",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectFiles(tt.files, tt.dir, extensions)
			if (err != nil) != tt.wantErr {
				t.Fatalf("collectFiles() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveVersion(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		config   string
		override string
		want     edm.Version
		wantErr  bool
	}{
		{name: "config default", config: "4.0", want: edm.Version4_0},
		{name: "override", config: "4.0", override: "4.01", want: edm.Version4_01},
		{name: "invalid override", config: "4.0", override: "3.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Validation.Version = tt.config
			got, err := resolveVersion(cfg, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenReportStorage(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{name: "memory", driver: "memory"},
		{name: "pure go sqlite", driver: storage.DriverPureGo},
		{name: "cgo sqlite", driver: storage.DriverCGO},
		{name: "unknown", driver: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Reports
			cfg.Driver = tt.driver
			cfg.Path = filepath.Join(t.TempDir(), "nested", "reports.db")

			store, err := openReportStorage(&cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openReportStorage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer store.Close()

			if _, err := store.Count(context.Background(), &report.Query{}); err != nil {
				t.Errorf("Count() error = %v", err)
			}
		})
	}
}
