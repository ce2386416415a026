package graph

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, g *Graph, base string) []Entry {
	t.Helper()
	table, err := Build(g, Decompose(g, base, 0), base, nil)
	require.NoError(t, err)
	return table[base]
}

func TestBuildNestedMerges(t *testing.T) {
	g := New(loadFixture(t, "nested_merges.log"))
	entries := buildTable(t, g, "master")

	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, entryIDs(entries))

	want := map[string][]string{
		"0": {},
		"1": {},
		"2": {"8", "13", "12", "7", "6"},
		"3": {"11", "16", "15", "14", "10", "9"},
		"4": {},
		"5": {},
	}
	got := make(map[string][]string)
	for _, e := range entries {
		got[e.Base.ID()] = ids(e.Source)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLinear(t *testing.T) {
	g := New(records(
		tip("tip", "main", "mid"),
		c("mid", "root"),
		c("root"),
	))
	entries := buildTable(t, g, "main")

	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotNil(t, e.Source)
		assert.Empty(t, e.Source)
	}
}

func TestBuildOctopusMerge(t *testing.T) {
	g := New(records(
		tip("m", "main", "p", "a2", "b2", "c2"),
		c("a2", "a1"),
		c("a1", "p"),
		c("b2", "b1"),
		c("b1", "p"),
		c("c2", "c1"),
		c("c1", "p"),
		c("p"),
	))
	entries := buildTable(t, g, "main")

	require.Len(t, entries, 2)
	assert.Equal(t, "m", entries[0].Base.ID())
	assert.Equal(t, []string{"a2", "a1", "b2", "b1", "c2", "c1"}, ids(entries[0].Source))
	assert.Empty(t, entries[1].Source)
}

func TestBuildPhantomParent(t *testing.T) {
	g := New(records(
		tip("m", "main", "p", "ghost", "s"),
		c("s", "p"),
		c("p", "gone"),
	))
	entries := buildTable(t, g, "main")

	require.Len(t, entries, 2)
	assert.Equal(t, []string{"s"}, ids(entries[0].Source))
	assert.Empty(t, entries[1].Source)
}

func TestBuildNestedMergeFromOtherBranch(t *testing.T) {
	// feature merges topic before landing on main; topic history is pulled in
	g := New(records(
		tip("m", "main", "r", "f2"),
		tip("f2", "feature", "f1", "t1"),
		tip("t1", "topic", "r"),
		c("f1", "r"),
		c("r"),
	))
	entries := buildTable(t, g, "main")

	require.Len(t, entries, 2)
	assert.Equal(t, []string{"f2", "t1", "f1"}, ids(entries[0].Source))
}

func TestBuildErrors(t *testing.T) {
	g := New(records(tip("a", "main")))

	_, err := Build(g, Decompose(g, "main", 0), "release", nil)
	assert.ErrorIs(t, err, ErrGraphIntegrity)

	empty := New(nil)
	_, err = Build(empty, Decompose(empty, "main", 0), "main", nil)
	assert.ErrorIs(t, err, ErrGraphIntegrity)

	_, err = Build(g, nil, "main", nil)
	assert.ErrorIs(t, err, ErrGraphIntegrity)
}

func TestBuildCoverageProperty(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		t.Run(strconv.FormatInt(seed, 10), func(t *testing.T) {
			g := New(randomHistory(seed, 60))
			entries := buildTable(t, g, "main")

			bases := make(map[string]bool)
			for _, e := range entries {
				bases[e.Base.ID()] = true
			}

			seen := make(map[string]string)
			for _, e := range entries {
				if len(e.Base.Commit.ParentIDs) < 2 {
					assert.Empty(t, e.Source, "non-merge %s", e.Base.ID())
				}
				for i, n := range e.Source {
					prev, dup := seen[n.ID()]
					require.False(t, dup, "%s squashed into %s and %s", n.ID(), prev, e.Base.ID())
					seen[n.ID()] = e.Base.ID()
					assert.False(t, bases[n.ID()], "%s is both base and source", n.ID())
					if i > 0 {
						assert.LessOrEqual(t, e.Source[i-1].Sequence(), n.Sequence())
					}
				}
			}
		})
	}
}
