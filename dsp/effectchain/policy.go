package effectchain

import (
	"fmt"
	"strings"
)

// StatePolicy selects how the chaotic stages keep state between samples.
type StatePolicy int

const (
	// StatePolicyContinuous keeps one persistent stage set per channel.
	// Parameter changes update the stage amounts in place so the attractor
	// and recurrence evolve continuously across samples and blocks.
	StatePolicyContinuous StatePolicy = iota
	// StatePolicyReference rebuilds a single stage set from the current
	// parameter values before every frame and shares it across the channels
	// of that frame. Chaotic state never survives past one frame.
	StatePolicyReference
)

func (p StatePolicy) String() string {
	switch p {
	case StatePolicyContinuous:
		return "continuous"
	case StatePolicyReference:
		return "reference"
	default:
		return fmt.Sprintf("StatePolicy(%d)", int(p))
	}
}

// ParseStatePolicy parses "continuous" or "reference", case-insensitively.
func ParseStatePolicy(s string) (StatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "":
		return StatePolicyContinuous, nil
	case "reference":
		return StatePolicyReference, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatePolicy, s)
	}
}

func validStatePolicy(p StatePolicy) bool {
	return p == StatePolicyContinuous || p == StatePolicyReference
}
