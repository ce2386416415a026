package cluster

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ReleaseTags keeps the tags that read as semantic versions ("v1.2.0",
// "2.0.0-rc.1"), newest version first. Other tags are dropped, including
// bare numbers such as "2024" that semver would coerce to a version.
func ReleaseTags(tags []string) []string {
	type release struct {
		tag     string
		version *semver.Version
	}

	var releases []release
	for _, tag := range tags {
		if !strings.Contains(tag, ".") {
			continue
		}
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		releases = append(releases, release{tag: tag, version: v})
	}
	if len(releases) == 0 {
		return nil
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].version.GreaterThan(releases[j].version)
	})

	out := make([]string, 0, len(releases))
	for _, r := range releases {
		out = append(out, r.tag)
	}
	return out
}

// LatestRelease returns the newest release tag across the clusters' base
// commits, or "".
func LatestRelease(clusters []Cluster) string {
	var all []string
	for _, c := range clusters {
		if len(c.Commits) > 0 {
			all = append(all, c.Commits[0].ReleaseTags...)
		}
	}
	if tags := ReleaseTags(all); len(tags) > 0 {
		return tags[0]
	}
	return ""
}
