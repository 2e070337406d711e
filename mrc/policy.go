package mrc

import (
	"fmt"

	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/kosmo"
)

// ParseCachePolicy parses a --policy/--minisim-policy flag value and
// validates its numeric parameters, returning a typed InvalidPolicyConfig
// error on either failure.
func ParseCachePolicy(value string) (cache.Policy, error) {
	p, err := cache.ParsePolicy(value)
	if err != nil {
		return cache.Policy{}, newError(InvalidPolicyConfig, fmt.Sprintf("policy %q", value), err)
	}

	switch p.Kind {
	case cache.KindTwoQ:
		if err := validateTwoQ(p.Kin, p.Kout); err != nil {
			return cache.Policy{}, err
		}
	case cache.KindLRFU:
		if err := validateLRFU(p.P, p.Lambda); err != nil {
			return cache.Policy{}, err
		}
	}

	return p, nil
}

// ParseKosmoPolicy parses a --kosmo-policy flag value (a bare policy token;
// its numeric parameters, if any, are the fixed reference values and always
// pass validation).
func ParseKosmoPolicy(value string) (kosmo.Policy, error) {
	p, err := kosmo.ParsePolicy(value)
	if err != nil {
		return kosmo.Policy{}, newError(InvalidPolicyConfig, fmt.Sprintf("kosmo policy %q", value), err)
	}
	return p, nil
}

func validateTwoQ(kin, kout float64) error {
	if kin+kout > 1 {
		return newError(InvalidPolicyConfig, fmt.Sprintf("2Q kin+kout must be <= 1, got %v+%v", kin, kout), nil)
	}
	if kin < 0 || kout < 0 {
		return newError(InvalidPolicyConfig, fmt.Sprintf("2Q kin and kout must be >= 0, got %v, %v", kin, kout), nil)
	}
	return nil
}

func validateLRFU(p, lambda float64) error {
	if p < 2 {
		return newError(InvalidPolicyConfig, fmt.Sprintf("LRFU p must be >= 2, got %v", p), nil)
	}
	if lambda < 0 || lambda > 1 {
		return newError(InvalidPolicyConfig, fmt.Sprintf("LRFU lambda must be in [0, 1], got %v", lambda), nil)
	}
	return nil
}
