package model

import (
	"testing"
	"time"
)

func TestVendorTokenValid(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token *VendorToken
		want  bool
	}{
		{
			name:  "nil token",
			token: nil,
			want:  false,
		},
		{
			name:  "empty access token",
			token: &VendorToken{ExpiresIn: 3600, IssuedAt: now.UnixMilli()},
			want:  false,
		},
		{
			name: "fresh token",
			token: &VendorToken{
				AccessToken: "abc",
				ExpiresIn:   3600,
				IssuedAt:    now.UnixMilli(),
			},
			want: true,
		},
		{
			name: "inside safety margin",
			token: &VendorToken{
				AccessToken: "abc",
				ExpiresIn:   3600,
				IssuedAt:    now.Add(-56 * time.Minute).UnixMilli(),
			},
			want: false,
		},
		{
			name: "just outside safety margin",
			token: &VendorToken{
				AccessToken: "abc",
				ExpiresIn:   3600,
				IssuedAt:    now.Add(-54 * time.Minute).UnixMilli(),
			},
			want: true,
		},
		{
			name: "expired",
			token: &VendorToken{
				AccessToken: "abc",
				ExpiresIn:   3600,
				IssuedAt:    now.Add(-2 * time.Hour).UnixMilli(),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVendorTokenValidBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	token := &VendorToken{AccessToken: "abc", ExpiresIn: 3600, IssuedAt: issued.UnixMilli()}

	// Validity cutoff is issue + expires_in - safety margin.
	cutoff := issued.Add(time.Hour - TokenSafetyMargin)

	if !token.Valid(cutoff.Add(-time.Millisecond)) {
		t.Error("token should be valid just before the cutoff")
	}
	if token.Valid(cutoff) {
		t.Error("token should be invalid at the cutoff")
	}
}
