package domain

const (
	// PlaceholderDescribe stands in for git describe output when no repository is available.
	PlaceholderDescribe = "v9999.9999-9999-gffffff"
	// PlaceholderBranch stands in for the branch name when no repository is available.
	PlaceholderBranch = "localbuild"
)

// Source is the source-control information a version is resolved from.
type Source struct {
	Describe string
	Branch   Branch
	// Placeholder is set when the values are canned rather than read from a repository.
	Placeholder bool
}

// PlaceholderSource returns the canned source used for builds outside a repository.
func PlaceholderSource() Source {
	return Source{
		Describe:    PlaceholderDescribe,
		Branch:      PlaceholderBranch,
		Placeholder: true,
	}
}
