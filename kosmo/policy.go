package kosmo

import "fmt"

// PolicyKind identifies which eviction policy a Policy configures Kosmo to
// simulate.
type PolicyKind uint8

const (
	PolicyLFU PolicyKind = iota
	PolicyFIFO
	PolicyTwoQ
	PolicyLRFU
	PolicyLRU
)

// Policy is one of the five eviction policies Kosmo can simulate
// concurrently, each producing its own miss-ratio curve from a single pass
// over the trace. Unlike cache.Policy (whose CLI form carries explicit
// numeric parameters), a Kosmo policy is selected with a bare CLI token and
// always gets the reference 2Q/LRFU parameters, since Kosmo's eviction maps
// reconstruct stacks for every cache size in the trace and would be
// prohibitively slow to also sweep parameter space.
type Policy struct {
	Kind PolicyKind

	Kin, Kout float64 // PolicyTwoQ
	P, Lambda float64 // PolicyLRFU
}

// Equal reports whether p and other select the same policy with the same
// parameters (duplicate-policy detection treats "2q" twice, or "2q" and an
// equivalently-parameterized one, as the same policy).
func (p Policy) Equal(other Policy) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case PolicyTwoQ:
		return p.Kin == other.Kin && p.Kout == other.Kout
	case PolicyLRFU:
		return p.P == other.P && p.Lambda == other.Lambda
	default:
		return true
	}
}

func (p Policy) String() string {
	switch p.Kind {
	case PolicyLFU:
		return "lfu"
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	case PolicyTwoQ:
		return "2q"
	case PolicyLRFU:
		return "lrfu"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a bare --policy token ("lfu", "fifo", "lru", "2q" or
// "lrfu") into a Policy carrying the reference parameters for 2Q
// (Kin=0.25, Kout=0.5) and LRFU (P=2.0, Lambda=0.5).
func ParsePolicy(value string) (Policy, error) {
	switch value {
	case "lfu":
		return Policy{Kind: PolicyLFU}, nil
	case "fifo":
		return Policy{Kind: PolicyFIFO}, nil
	case "lru":
		return Policy{Kind: PolicyLRU}, nil
	case "2q":
		return Policy{Kind: PolicyTwoQ, Kin: 0.25, Kout: 0.5}, nil
	case "lrfu":
		return Policy{Kind: PolicyLRFU, P: 2.0, Lambda: 0.5}, nil
	default:
		return Policy{}, fmt.Errorf("kosmo: invalid policy %q", value)
	}
}

func hasDuplicatePolicies(policies []Policy) bool {
	for i := 0; i < len(policies)-1; i++ {
		for j := i + 1; j < len(policies); j++ {
			if policies[i].Equal(policies[j]) {
				return true
			}
		}
	}
	return false
}
