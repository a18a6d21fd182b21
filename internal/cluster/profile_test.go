package cluster

import (
	"testing"
	"time"
)

func TestDecodeProfiles(t *testing.T) {
	raw := map[string]any{
		"prod-a": map[string]any{
			"address":  "10.0.0.10",
			"username": "svc_snap",
			"insecure": "true",
			"timeout":  "90s",
		},
		"dr-b.example.net": map[string]any{
			"password": "secret",
		},
	}

	profiles, err := DecodeProfiles(raw)
	if err != nil {
		t.Fatalf("DecodeProfiles() unexpected error: %v", err)
	}

	prod := profiles["prod-a"]
	if prod.Name != "prod-a" || prod.Address != "10.0.0.10" || prod.Username != "svc_snap" {
		t.Errorf("prod-a decoded as %+v", prod)
	}
	if !prod.Insecure {
		t.Errorf("prod-a Insecure = false, want true (weakly typed)")
	}
	if prod.Timeout != 90*time.Second {
		t.Errorf("prod-a Timeout = %v, want 90s", prod.Timeout)
	}

	dr := profiles["dr-b.example.net"]
	if dr.Address != "dr-b.example.net" {
		t.Errorf("dr Address = %q, want profile name as address", dr.Address)
	}
	if dr.Password != "secret" {
		t.Errorf("dr Password not decoded")
	}
}

func TestDecodeProfiles_Empty(t *testing.T) {
	profiles, err := DecodeProfiles(nil)
	if err != nil {
		t.Fatalf("DecodeProfiles(nil) unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("DecodeProfiles(nil) = %v, want empty", profiles)
	}
}

func TestDecodeProfiles_Invalid(t *testing.T) {
	raw := map[string]any{
		"prod-a": map[string]any{"timeout": "ninety"},
	}
	if _, err := DecodeProfiles(raw); err == nil {
		t.Error("DecodeProfiles() expected error for bad duration")
	}
}

func TestResolveProfile(t *testing.T) {
	profiles := map[string]Profile{
		"prod-a": {Name: "prod-a", Address: "10.0.0.10", Username: "svc_snap"},
	}

	tests := []struct {
		name        string
		lookup      string
		wantAddress string
		wantUser    string
	}{
		{name: "Known Profile", lookup: "prod-a", wantAddress: "10.0.0.10", wantUser: "svc_snap"},
		{name: "Bare Address", lookup: "10.1.1.1", wantAddress: "10.1.1.1", wantUser: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveProfile(profiles, tt.lookup)
			if got.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", got.Address, tt.wantAddress)
			}
			if got.Username != tt.wantUser {
				t.Errorf("Username = %q, want %q", got.Username, tt.wantUser)
			}
			if got.Name != tt.lookup {
				t.Errorf("Name = %q, want %q", got.Name, tt.lookup)
			}
		})
	}
}

func TestParseGuarantee(t *testing.T) {
	tests := []struct {
		in     string
		want   Guarantee
		wantOK bool
	}{
		{"volume", GuaranteeVolume, true},
		{"NONE", GuaranteeNone, true},
		{" none ", GuaranteeNone, true},
		{"file", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseGuarantee(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseGuarantee(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
