package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRefs(t *testing.T) {
	tests := []struct {
		name         string
		decoration   string
		wantBranches []string
		wantTags     []string
	}{
		{
			name:         "head pointer keeps its branch",
			decoration:   "HEAD -> main, origin/main)",
			wantBranches: []string{"main", "origin/main"},
		},
		{
			name:         "tags are separated",
			decoration:   "tag: v1.0.0, release, tag: latest)",
			wantBranches: []string{"release"},
			wantTags:     []string{"v1.0.0", "latest"},
		},
		{
			name:         "detached head",
			decoration:   "HEAD)",
			wantBranches: []string{"HEAD"},
		},
		{
			name:       "only a tag",
			decoration: " tag: v2.1.0-rc.1 )",
			wantTags:   []string{"v2.1.0-rc.1"},
		},
		{
			name:       "empty",
			decoration: ")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			branches, tags := parseRefs(tt.decoration)
			assert.Equal(t, tt.wantBranches, branches)
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}
