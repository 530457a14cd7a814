package phasegraph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNodes(ids ...string) map[string]*Node[string] {
	nodes := make(map[string]*Node[string], len(ids))
	for _, id := range ids {
		nodes[id] = NewNode(id)
	}
	return nodes
}

func ids(nodes []*Node[string]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

// A cycle among b, y, z, with a and e feeding into it and d feeding e. f is
// isolated. Node order is shuffled to prove determinism.
func TestSort_CycleGrouping(t *testing.T) {
	build := func(order []string) []*Node[string] {
		nodes := buildNodes("a", "b", "d", "e", "f", "y", "z")
		require.NoError(t, Link(nodes["a"], nodes["z"]))
		require.NoError(t, Link(nodes["d"], nodes["e"]))
		require.NoError(t, Link(nodes["e"], nodes["z"]))
		require.NoError(t, Link(nodes["z"], nodes["b"]))
		require.NoError(t, Link(nodes["b"], nodes["y"]))
		require.NoError(t, Link(nodes["y"], nodes["z"]))

		list := make([]*Node[string], len(order))
		for i, id := range order {
			list[i] = nodes[id]
		}
		return list
	}

	orders := [][]string{
		{"a", "b", "d", "e", "f", "y", "z"},
		{"z", "y", "f", "e", "d", "b", "a"},
		{"f", "e", "d", "y", "z", "b", "a"},
		{"y", "z", "a", "b", "d", "e", "f"},
	}

	for _, order := range orders {
		nodes := build(order)
		acyclic := Sort(nodes, Natural[string](), WithCycleWarningsDisabled())
		assert.False(t, acyclic, "cycle must be reported")
		assert.Equal(t, []string{"a", "d", "e", "b", "y", "z", "f"}, ids(nodes))
	}
}

func TestSort_AcyclicHonorsEdges(t *testing.T) {
	nodes := buildNodes("early", "mid", "late")
	require.NoError(t, Link(nodes["early"], nodes["mid"]))
	require.NoError(t, Link(nodes["mid"], nodes["late"]))

	list := []*Node[string]{nodes["late"], nodes["mid"], nodes["early"]}
	acyclic := Sort(list, Natural[string]())
	assert.True(t, acyclic)
	assert.Equal(t, []string{"early", "mid", "late"}, ids(list))
}

// Five named phases, linked consecutively, registered in every one of the
// 120 possible orders, must always sort to the same order.
func TestSort_Determinism_AllPermutations(t *testing.T) {
	names := []string{"very_early", "early", "default", "late", "very_late"}

	permute(names, func(order []string) {
		nodes := buildNodes(names...)
		for i := 0; i+1 < len(names); i++ {
			require.NoError(t, Link(nodes[names[i]], nodes[names[i+1]]))
		}

		list := make([]*Node[string], len(order))
		for i, id := range order {
			list[i] = nodes[id]
		}

		acyclic := Sort(list, Natural[string]())
		assert.True(t, acyclic)
		assert.Equal(t, names, ids(list))
	})
}

func TestSort_PermutationOfInput(t *testing.T) {
	nodes := buildNodes("a", "b", "c", "d")
	require.NoError(t, Link(nodes["a"], nodes["b"]))
	require.NoError(t, Link(nodes["c"], nodes["d"]))

	list := []*Node[string]{nodes["d"], nodes["c"], nodes["b"], nodes["a"]}
	Sort(list, Natural[string]())

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, ids(list))
}

func TestSort_EmptyInput(t *testing.T) {
	var list []*Node[string]
	assert.True(t, Sort(list, Natural[string]()))
}

func TestLink_SelfEdgeRejected(t *testing.T) {
	n := NewNode("a")
	err := Link(n, n)
	require.Error(t, err)
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestLink_Idempotent(t *testing.T) {
	nodes := buildNodes("a", "b", "c")
	require.NoError(t, Link(nodes["a"], nodes["b"]))
	require.NoError(t, Link(nodes["a"], nodes["b"]))
	require.NoError(t, Link(nodes["b"], nodes["c"]))

	list := []*Node[string]{nodes["c"], nodes["b"], nodes["a"]}
	acyclic := Sort(list, Natural[string]())
	assert.True(t, acyclic)
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
}

// permute calls fn once for every permutation of items (Heap's algorithm).
func permute(items []string, fn func([]string)) {
	n := len(items)
	buf := make([]string, n)
	copy(buf, items)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			out := make([]string, n)
			copy(out, buf)
			fn(out)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				buf[i], buf[k-1] = buf[k-1], buf[i]
			} else {
				buf[0], buf[k-1] = buf[k-1], buf[0]
			}
		}
	}
	generate(n)
}

func TestSort_RandomizedLargeAcyclicGraph(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := make([]string, 20)
	for i := range names {
		names[i] = string(rune('a' + i))
	}

	nodes := buildNodes(names...)
	for i := 0; i+1 < len(names); i++ {
		require.NoError(t, Link(nodes[names[i]], nodes[names[i+1]]))
	}

	list := make([]*Node[string], 0, len(names))
	for _, n := range names {
		list = append(list, nodes[n])
	}
	rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

	acyclic := Sort(list, Natural[string]())
	assert.True(t, acyclic)
	assert.Equal(t, names, ids(list))
}
