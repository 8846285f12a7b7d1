package valueobject

import (
	"fmt"
	"strings"
)

// ResourceType identifies the kind of cloud resource under assessment.
type ResourceType struct {
	value string
}

var (
	ResourceEC2 = ResourceType{value: "ec2"}
	ResourceEBS = ResourceType{value: "ebs"}
	ResourceRDS = ResourceType{value: "rds"}
	ResourceELB = ResourceType{value: "elb"}
)

// ResourceTypeFromString reconstructs a ResourceType from its string
// form. Matching is case-insensitive because upstream inventories are
// inconsistent about casing.
func ResourceTypeFromString(s string) (ResourceType, error) {
	switch strings.ToLower(s) {
	case "ec2":
		return ResourceEC2, nil
	case "ebs":
		return ResourceEBS, nil
	case "rds":
		return ResourceRDS, nil
	case "elb":
		return ResourceELB, nil
	default:
		return ResourceType{}, fmt.Errorf("invalid resource type: %s", s)
	}
}

// String returns the string representation.
func (r ResourceType) String() string {
	return r.value
}

// IsZero returns true if the ResourceType has not been set.
func (r ResourceType) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another ResourceType.
func (r ResourceType) Equal(other ResourceType) bool {
	return r.value == other.value
}
