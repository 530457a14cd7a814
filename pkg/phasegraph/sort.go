package phasegraph

import (
	"container/heap"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Comparator orders two identifiers, returning a negative number if a sorts
// before b, zero if equal, and a positive number if a sorts after b. It must
// be a strict total order over the identifiers passed to Sort.
type Comparator[I comparable] func(a, b I) int

// Logger receives the cycle warning Sort emits when it degrades to grouping
// a strongly connected component instead of failing. *slog.Logger satisfies
// this interface.
type Logger interface {
	Warn(msg string, args ...any)
}

// noopLogger discards warnings; used when cycle warnings are disabled. A nil
// Logger passed to WithLogger is ignored and slog.Default() stays in place.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// SortOption configures a single Sort call.
type SortOption func(*sortConfig)

type sortConfig struct {
	logger          Logger
	suppressWarning bool
}

// WithLogger routes the cycle warning to the given logger instead of the
// package default (slog.Default()).
func WithLogger(l Logger) SortOption {
	return func(c *sortConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCycleWarningsDisabled suppresses the cycle warning entirely. Intended
// for tests that deliberately exercise cyclic input and don't want the
// warning cluttering output.
func WithCycleWarningsDisabled() SortOption {
	return func(c *sortConfig) {
		c.suppressWarning = true
	}
}

// Natural returns a Comparator using Go's built-in ordering for any ordered
// identifier type (string, int, and similar).
func Natural[I interface {
	comparable
	~string | ~int | ~int32 | ~int64 | ~float64
}]() Comparator[I] {
	return func(a, b I) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// Sort reorders nodes in place into a canonical topological order:
//
//  1. Nodes honoring every edge u -> v where u and v fall in different
//     strongly connected components (u is placed before v).
//  2. Members of the same strongly connected component are grouped into a
//     contiguous block, sorted internally by comparator, with blocks
//     themselves ordered by the comparator applied to each block's minimum
//     member.
//  3. Ties among independent nodes are broken by comparator.
//
// The result is a deterministic function of node identities and edges,
// regardless of the order nodes are passed in. Sort never fails: cycles
// degrade to SCC grouping and Sort returns acyclic=false, having logged a
// warning describing the cycle's members (through opts, or slog.Default()).
func Sort[I comparable](nodes []*Node[I], comparator Comparator[I], opts ...SortOption) (acyclic bool) {
	cfg := sortConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.suppressWarning {
		cfg.logger = noopLogger{}
	}

	if len(nodes) == 0 {
		return true
	}

	for _, n := range nodes {
		n.visited = false
	}

	// Step 1: forward DFS over `next` edges to build a reverse postorder.
	var postorder []*Node[I]
	for _, n := range nodes {
		if !n.visited {
			postorder = forwardDFS(n, postorder)
		}
	}

	// Step 2: clear visited flags, reverse the postorder.
	for _, n := range nodes {
		n.visited = false
	}
	for i, j := 0, len(postorder)-1; i < j; i, j = i+1, j-1 {
		postorder[i], postorder[j] = postorder[j], postorder[i]
	}

	// Step 3: backward DFS over `prev` edges in reversed-postorder order,
	// collecting strongly connected components.
	var sccs [][]*Node[I]
	for _, n := range postorder {
		if !n.visited {
			var members []*Node[I]
			members = backwardDFS(n, members)
			sort.Slice(members, func(i, j int) bool {
				return comparator(members[i].ID, members[j].ID) < 0
			})
			sccs = append(sccs, members)
		}
	}

	sccIndex := make(map[I]int, len(nodes))
	for i, scc := range sccs {
		for _, n := range scc {
			sccIndex[n.ID] = i
		}
	}

	// Step 4: build the SCC DAG, counting in-degree; ignore intra-SCC edges.
	adjSeen := make([]map[int]bool, len(sccs))
	for i := range adjSeen {
		adjSeen[i] = make(map[int]bool)
	}
	inDegree := make([]int, len(sccs))
	var sccOut [][]int
	sccOut = make([][]int, len(sccs))

	for _, n := range nodes {
		su := sccIndex[n.ID]
		for _, v := range n.next {
			sv := sccIndex[v.ID]
			if su == sv || adjSeen[su][sv] {
				continue
			}
			adjSeen[su][sv] = true
			sccOut[su] = append(sccOut[su], sv)
			inDegree[sv]++
		}
	}

	// Step 5: Kahn-style drain using a priority queue ordered by the
	// comparator applied to each SCC's minimum (already-sorted first) member.
	pq := &sccQueue[I]{comparator: comparator, sccs: sccs}
	heap.Init(pq)
	for i, deg := range inDegree {
		if deg == 0 {
			heap.Push(pq, i)
			inDegree[i] = -1 // mark queued so it's never pushed again
		}
	}

	result := make([]*Node[I], 0, len(nodes))
	var cycleGroups [][]*Node[I]

	for pq.Len() > 0 {
		s := heap.Pop(pq).(int)
		result = append(result, sccs[s]...)
		if len(sccs[s]) > 1 {
			cycleGroups = append(cycleGroups, sccs[s])
		}
		for _, t := range sccOut[s] {
			if inDegree[t] < 0 {
				continue
			}
			inDegree[t]--
			if inDegree[t] == 0 {
				heap.Push(pq, t)
				inDegree[t] = -1
			}
		}
	}

	copy(nodes, result)

	if len(cycleGroups) == 0 {
		return true
	}
	for _, group := range cycleGroups {
		logCycle(cfg.logger, group)
	}
	return false
}

func forwardDFS[I comparable](n *Node[I], postorder []*Node[I]) []*Node[I] {
	n.visited = true
	for _, v := range n.next {
		if !v.visited {
			postorder = forwardDFS(v, postorder)
		}
	}
	return append(postorder, n)
}

func backwardDFS[I comparable](n *Node[I], members []*Node[I]) []*Node[I] {
	n.visited = true
	members = append(members, n)
	for _, v := range n.prev {
		if !v.visited {
			members = backwardDFS(v, members)
		}
	}
	return members
}

func logCycle[I comparable](l Logger, group []*Node[I]) {
	ids := make([]string, len(group))
	for i, n := range group {
		ids[i] = fmt.Sprintf("%v", n.ID)
	}
	l.Warn("phasegraph: cycle detected, grouping strongly connected phases",
		"members", strings.Join(ids, ", "))
}

// sccQueue is a container/heap priority queue over SCC indices, ordered by
// comparator applied to each SCC's minimum member (sccs[i][0], since each
// SCC's member slice is pre-sorted by the same comparator).
type sccQueue[I comparable] struct {
	comparator Comparator[I]
	sccs       [][]*Node[I]
	items      []int
}

func (q *sccQueue[I]) Len() int { return len(q.items) }

func (q *sccQueue[I]) Less(i, j int) bool {
	a := q.sccs[q.items[i]][0].ID
	b := q.sccs[q.items[j]][0].ID
	return q.comparator(a, b) < 0
}

func (q *sccQueue[I]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *sccQueue[I]) Push(x any) {
	q.items = append(q.items, x.(int))
}

func (q *sccQueue[I]) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}
