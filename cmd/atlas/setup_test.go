package main

import (
	"os"
	"reflect"
	"testing"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/license"
)

func TestParseApproaches(t *testing.T) {
	kinds, err := parseApproaches([]string{"local_lora", "api_finetune"})
	if err != nil {
		t.Fatalf("parseApproaches: %v", err)
	}
	want := []costing.ApproachKind{costing.LocalLoRA, costing.APIFineTune}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}

	if _, err := parseApproaches([]string{"cloud_qlora"}); err == nil {
		t.Error("expected error for unknown approach")
	}
}

func TestGateApproaches(t *testing.T) {
	premium := license.NewManager(license.TierPremium)
	free := license.NewManager(license.TierFree)

	tests := []struct {
		name      string
		requested []costing.ApproachKind
		lic       *license.Manager
		want      []costing.ApproachKind
	}{
		{
			name: "premium passes through",
			lic:  premium,
			want: nil,
		},
		{
			name:      "premium keeps explicit selection",
			requested: []costing.ApproachKind{costing.CloudFull},
			lic:       premium,
			want:      []costing.ApproachKind{costing.CloudFull},
		},
		{
			name: "free defaults to reduced subset",
			lic:  free,
			want: costing.FreeTierApproaches,
		},
		{
			name:      "free drops premium approaches",
			requested: []costing.ApproachKind{costing.CloudFull, costing.APIFineTune},
			lic:       free,
			want:      []costing.ApproachKind{costing.APIFineTune},
		},
		{
			name:      "free keeps local lora",
			requested: []costing.ApproachKind{costing.LocalLoRA, costing.CloudLoRA},
			lic:       free,
			want:      []costing.ApproachKind{costing.LocalLoRA},
		},
		{
			name:      "free falls back when nothing survives",
			requested: []costing.ApproachKind{costing.CloudFull},
			lic:       free,
			want:      costing.FreeTierApproaches,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gateApproaches(tt.requested, tt.lic)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("gateApproaches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScalingFromConfig(t *testing.T) {
	cfg := config.Default()
	scaling := scalingFromConfig(cfg.Costing)
	if scaling != costing.DefaultScalingParams() {
		t.Errorf("defaults mismatch: %+v", scaling)
	}

	cfg.Costing.GPUEfficiency = 0.55
	if got := scalingFromConfig(cfg.Costing).GPUEfficiency; got != 0.55 {
		t.Errorf("gpu efficiency = %v, want 0.55", got)
	}
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
	cfgFile = "atlas.yaml"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Pricing.CacheTTL != config.DefaultCacheTTL {
		t.Errorf("cache ttl = %v, want default", cfg.Pricing.CacheTTL)
	}
}
