package mrc

import (
	"errors"
	"testing"

	"github.com/IvanBrykalov/kosmo/cache"
)

func TestParseCachePolicy_TwoQRangeValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "2q-0.2-0.3", false},
		{"kin+kout over 1", "2q-0.7-0.7", true},
		{"negative kin", "2q--0.1-0.3", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCachePolicy(tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCachePolicy(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
			if err != nil {
				var mErr *Error
				if !errors.As(err, &mErr) || mErr.Kind != InvalidPolicyConfig {
					t.Fatalf("expected an InvalidPolicyConfig *Error, got %v", err)
				}
			}
		})
	}
}

func TestParseCachePolicy_LRFURangeValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "lrfu-2.5-0.5", false},
		{"p below 2", "lrfu-1-0.5", true},
		{"lambda above 1", "lrfu-2.5-1.5", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCachePolicy(tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCachePolicy(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
		})
	}
}

func TestParseCachePolicy_LRU(t *testing.T) {
	t.Parallel()

	p, err := ParseCachePolicy("lru")
	if err != nil {
		t.Fatalf("ParseCachePolicy(lru) = %v", err)
	}
	if p.Kind != cache.KindLRU {
		t.Fatalf("Kind = %v, want KindLRU", p.Kind)
	}
}

func TestParseKosmoPolicy_InvalidToken(t *testing.T) {
	t.Parallel()

	_, err := ParseKosmoPolicy("not-a-policy")
	if err == nil {
		t.Fatal("expected an error for an unrecognized kosmo policy token")
	}

	var mErr *Error
	if !errors.As(err, &mErr) || mErr.Kind != InvalidPolicyConfig {
		t.Fatalf("expected an InvalidPolicyConfig *Error, got %v", err)
	}
}
