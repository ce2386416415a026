package git

import "strings"

const (
	tagPrefix  = "tag:"
	headPrefix = "HEAD ->"
)

// parseRefs splits a decoration list such as
// "HEAD -> main, origin/main, tag: v1.2.0)" into branch and tag refs.
// The HEAD pointer itself is not kept; the branch it points at is.
func parseRefs(decoration string) (branches, tags []string) {
	decoration = strings.TrimSpace(decoration)
	decoration = strings.TrimSuffix(decoration, ")")

	for _, entry := range strings.Split(decoration, ",") {
		entry = strings.TrimSpace(entry)

		switch {
		case entry == "":
		case strings.HasPrefix(entry, tagPrefix):
			if tag := strings.TrimSpace(strings.TrimPrefix(entry, tagPrefix)); tag != "" {
				tags = append(tags, tag)
			}
		case strings.HasPrefix(entry, headPrefix):
			rest := strings.TrimPrefix(entry, headPrefix)
			for _, branch := range strings.Split(rest, ",") {
				if branch = strings.TrimSpace(branch); branch != "" {
					branches = append(branches, branch)
				}
			}
		default:
			branches = append(branches, strings.TrimSpace(strings.TrimSuffix(entry, ")")))
		}
	}

	return branches, tags
}
