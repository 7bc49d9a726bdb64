package domain

import (
	"github.com/Masterminds/semver/v3"
)

// TagVersion wraps semver.Version for ordering release tags such as "v1.2".
type TagVersion struct {
	*semver.Version
	tag string
}

// NewTagVersion parses a tag name. Short forms like "v1.2" are accepted.
func NewTagVersion(tag string) (*TagVersion, error) {
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, err
	}
	return &TagVersion{Version: v, tag: tag}, nil
}

// Compare compares two tag versions.
func (v *TagVersion) Compare(other *TagVersion) int {
	return v.Version.Compare(other.Version)
}

// Tag returns the tag name exactly as it was parsed.
func (v *TagVersion) Tag() string {
	return v.tag
}

// String returns the normalized version with a v prefix.
func (v *TagVersion) String() string {
	return "v" + v.Version.String()
}
