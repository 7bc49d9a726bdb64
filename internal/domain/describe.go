package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// DescribeKind identifies which shape a describe string was parsed as.
type DescribeKind int

const (
	// DescribeMalformed means the string matched neither supported shape.
	DescribeMalformed DescribeKind = iota
	// DescribeTag is the bare "vX.Y" shape produced when HEAD is the tagged commit.
	DescribeTag
	// DescribeCommits is the "vX.Y-N-gHASH" shape.
	DescribeCommits
)

var (
	baseVersionRegex = regexp.MustCompile(`^v[0-9]+\.[0-9]+$`)
	commitCountRegex = regexp.MustCompile(`^[0-9]+$`)
)

// Describe is the parsed form of a git describe string.
type Describe struct {
	Raw  string
	Kind DescribeKind
	// Base is the tag without its "v" prefix, e.g. "1.2". It carries the
	// mod and API components of the resulting version.
	Base            string
	CommitsSinceTag int
	// Hash is everything after the commit count, e.g. "gabcdef". It is not validated.
	Hash string
}

// Malformed reports whether the describe string could not be parsed.
func (d Describe) Malformed() bool {
	return d.Kind == DescribeMalformed
}

// ParseDescribe parses the output of git describe against annotated tags.
func ParseDescribe(describe string) Describe {
	malformed := Describe{Raw: describe, Kind: DescribeMalformed}
	if !strings.Contains(describe, "-") {
		if !baseVersionRegex.MatchString(describe) {
			return malformed
		}
		return Describe{Raw: describe, Kind: DescribeTag, Base: describe[1:]}
	}
	parts := strings.Split(describe, "-")
	if !baseVersionRegex.MatchString(parts[0]) {
		return malformed
	}
	if !commitCountRegex.MatchString(parts[1]) {
		return malformed
	}
	commits, err := strconv.Atoi(parts[1])
	if err != nil {
		// out of range for int
		return malformed
	}
	return Describe{
		Raw:             describe,
		Kind:            DescribeCommits,
		Base:            parts[0][1:],
		CommitsSinceTag: commits,
		Hash:            strings.Join(parts[2:], "-"),
	}
}
