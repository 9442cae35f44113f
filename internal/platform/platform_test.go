package platform

import (
	"testing"

	"github.com/plurcast/plurcast/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"nostr", Nostr, false},
		{"mastodon", Mastodon, false},
		{"bluesky", Bluesky, false},
		{"ssb", SSB, false},
		{"", "", true},
		{"twitter", "", true},
		{"Nostr", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, pe := Parse(tt.in)
			if tt.wantErr {
				if pe == nil {
					t.Fatalf("Parse(%q) expected error", tt.in)
				}
				if pe.Code != errors.CodePlatformUnknown {
					t.Fatalf("expected PLUR_PLATFORM_UNKNOWN, got %s", pe.Code)
				}
				return
			}
			if pe != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, pe)
			}
			if p != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, p, tt.want)
			}
		})
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		p    Platform
		want string
	}{
		{Nostr, "private_key"},
		{SSB, "private_key"},
		{Mastodon, "access_token"},
		{Bluesky, "app_password"},
	}
	for _, tt := range tests {
		if got := tt.p.KeyName(); got != tt.want {
			t.Errorf("%s.KeyName() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestService(t *testing.T) {
	if got := Nostr.Service(); got != "plurcast.nostr" {
		t.Errorf("Service() = %q, want plurcast.nostr", got)
	}
}

func TestAll_CoversEveryPlatform(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(all))
	}
	for _, p := range all {
		if p.KeyName() == "" {
			t.Errorf("platform %s has no key name", p)
		}
	}
}
