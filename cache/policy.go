package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which eviction policy a Policy selects.
type Kind uint8

const (
	KindLFU Kind = iota
	KindFIFO
	KindTwoQ
	KindLRFU
	KindLRU
)

// Policy is a tagged union over the five supported eviction policies and
// their parameters, used to construct a fresh Cache at a given size. This
// is the "polymorphism via tagged union" style this module favors over
// trait objects, generalizing the donor's single-policy Options.Policy
// field to a small closed set of alternatives picked at runtime.
type Policy struct {
	Kind Kind

	// TwoQ parameters (Kind == KindTwoQ).
	Kin, Kout float64

	// LRFU parameters (Kind == KindLRFU).
	P, Lambda float64
}

// NewCache builds a fresh Cache of the given size under this policy.
func (p Policy) NewCache(size uint64) Cache {
	switch p.Kind {
	case KindLFU:
		return NewLFUCache(size)
	case KindFIFO:
		return NewFIFOCache(size)
	case KindTwoQ:
		return NewTwoQCache(size, p.Kin, p.Kout)
	case KindLRFU:
		return NewLRFUCache(size, p.P, p.Lambda)
	case KindLRU:
		return NewLRUCache(size)
	default:
		panic(fmt.Sprintf("cache: unknown policy kind %d", p.Kind))
	}
}

func (p Policy) String() string {
	switch p.Kind {
	case KindLFU:
		return "lfu"
	case KindFIFO:
		return "fifo"
	case KindLRU:
		return "lru"
	case KindTwoQ:
		return fmt.Sprintf("2q-%v-%v", p.Kin, p.Kout)
	case KindLRFU:
		return fmt.Sprintf("lrfu-%v-%v", p.P, p.Lambda)
	default:
		return "unknown"
	}
}

// ParsePolicy parses a --policy flag value: one of the bare names
// "lfu"/"fifo"/"lru", or "2q-<kin>-<kout>"/"lrfu-<p>-<lambda>" with
// explicit numeric parameters.
func ParsePolicy(value string) (Policy, error) {
	switch value {
	case "lfu":
		return Policy{Kind: KindLFU}, nil
	case "fifo":
		return Policy{Kind: KindFIFO}, nil
	case "lru":
		return Policy{Kind: KindLRU}, nil
	}

	switch {
	case strings.HasPrefix(value, "2q"):
		kin, kout, err := parsePair(value, "2q-")
		if err != nil {
			return Policy{}, fmt.Errorf("cache: invalid 2Q policy config: %w", err)
		}
		return Policy{Kind: KindTwoQ, Kin: kin, Kout: kout}, nil

	case strings.HasPrefix(value, "lrfu"):
		p, lambda, err := parsePair(value, "lrfu-")
		if err != nil {
			return Policy{}, fmt.Errorf("cache: invalid LRFU policy config: %w", err)
		}
		return Policy{Kind: KindLRFU, P: p, Lambda: lambda}, nil
	}

	return Policy{}, fmt.Errorf("cache: invalid cache policy %q", value)
}

func parsePair(value, prefix string) (a, b float64, err error) {
	replaced := strings.Replace(value, prefix, "", 1)
	parts := strings.Split(replaced, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected exactly two %q-separated values, got %d", "-", len(parts))
	}

	a, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first value %q: %w", parts[0], err)
	}

	b, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid second value %q: %w", parts[1], err)
	}

	return a, b, nil
}
