package orchestrator

import (
	"fmt"
	"regexp"
)

// versionRegex matches what the resolver can produce from sane inputs. Anything
// else came from a versionSuffix that would break stamped source files.
var versionRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateVersion checks a resolved version before it is written anywhere.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if len(version) > 255 {
		return fmt.Errorf("version too long: %d characters (max: 255)", len(version))
	}
	if !versionRegex.MatchString(version) {
		return fmt.Errorf("invalid version format: %q (allowed: letters, digits, '.', '_' and '-')", version)
	}
	return nil
}
