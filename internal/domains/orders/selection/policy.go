package selection

import (
	"fmt"
	"strings"
)

// LastUpdatedPolicy decides what a commit does to the order's LastUpdated date.
type LastUpdatedPolicy string

const (
	// PreserveLastUpdated leaves LastUpdated as it was.
	PreserveLastUpdated LastUpdatedPolicy = "preserve"
	// TouchLastUpdated stamps today's date when the status actually changes.
	TouchLastUpdated LastUpdatedPolicy = "touch"
)

// ParseLastUpdatedPolicy accepts "preserve" or "touch".
func ParseLastUpdatedPolicy(raw string) (LastUpdatedPolicy, error) {
	switch LastUpdatedPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case PreserveLastUpdated, "":
		return PreserveLastUpdated, nil
	case TouchLastUpdated:
		return TouchLastUpdated, nil
	default:
		return "", fmt.Errorf("unknown last-updated policy %q", raw)
	}
}
