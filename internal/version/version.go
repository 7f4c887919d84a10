// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a semantic version number, with an optional pre-release label.
type Version struct {
	Major int
	Minor int
	Patch int
	Label string
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Label != "" {
		s += "-" + v.Label
	}
	return s
}

// IsZero returns true if all numeric components of v are zero.
func (v Version) IsZero() bool { return v.Major == 0 && v.Minor == 0 && v.Patch == 0 }

// Compare returns a positive integer if v1 is greater than v2, a negative integer if v1 is less than v2 and zero if they
// are equal. A version with a label is lower than the same version without one.
func (v1 Version) Compare(v2 Version) int {
	if result := v1.Major - v2.Major; result != 0 {
		return result
	}
	if result := v1.Minor - v2.Minor; result != 0 {
		return result
	}
	if result := v1.Patch - v2.Patch; result != 0 {
		return result
	}
	switch {
	case v1.Label == v2.Label:
		return 0
	case v1.Label == "":
		return 1
	case v2.Label == "":
		return -1
	}
	return strings.Compare(v1.Label, v2.Label)
}

// Less returns true if v1 is lower than v2.
func (v1 Version) Less(v2 Version) bool { return v1.Compare(v2) < 0 }

// Parse parses a semantic version number from string s.
func Parse(s string) (Version, error) {
	if len(s) > 0 && s[0] == 'v' {
		s = s[1:] // Trim v prefix
	}
	var label string
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s, label = s[:i], s[i+1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version number: %s", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %s", parts[0])
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %s", parts[1])
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %s", parts[2])
	}
	return Version{Major: major, Minor: minor, Patch: patch, Label: label}, nil
}

// MustParse is like Parse, but panics if s cannot be parsed.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
