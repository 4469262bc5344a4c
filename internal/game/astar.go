package game

// pathNode is an open-set entry. Ordering is f ascending, then g ascending,
// then seq ascending, so equally priced entries pop in discovery order and
// searches replay identically on identical input.
type pathNode struct {
	idx int // flat grid index
	g   int // cost from start
	f   int // g plus Manhattan heuristic
	seq int // insertion order
}

type pathHeap []pathNode

func (h pathHeap) before(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.seq < b.seq
}

func (h *pathHeap) push(n pathNode) {
	*h = append(*h, n)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(i, parent) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *pathHeap) pop() pathNode {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && h.before(right, left) {
			smallest = right
		}
		if !h.before(smallest, i) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FindPath runs A* over the grid's walkable cells and returns a shortest
// path from start to goal, both inclusive, with consecutive cells one
// axis-aligned step apart. ok is false when the goal cannot be reached;
// callers treat that as a normal outcome, not an error.
//
// The heuristic is the Manhattan distance, admissible and consistent for
// 4-directional unit-cost moves, so the returned path length is optimal.
func FindPath(g *Grid, start, goal Cell) (path []Cell, ok bool) {
	if !g.Walkable(start) || !g.Walkable(goal) {
		return nil, false
	}
	if start == goal {
		return []Cell{start}, true
	}

	size := g.rows * g.cols
	gScore := make([]int, size)
	parent := make([]int, size)
	closed := make([]bool, size)
	for i := range gScore {
		gScore[i] = -1
		parent[i] = -1
	}

	startIdx := g.index(start)
	gScore[startIdx] = 0

	open := make(pathHeap, 0, 64)
	open.push(pathNode{idx: startIdx, g: 0, f: start.Manhattan(goal)})
	seq := 0

	for len(open) > 0 {
		n := open.pop()
		if closed[n.idx] || n.g > gScore[n.idx] {
			continue // stale entry
		}
		closed[n.idx] = true

		cur := g.cellAt(n.idx)
		if cur == goal {
			return reconstructPath(g, parent, n.idx), true
		}

		for _, nb := range g.Neighbors(cur) {
			if !g.Walkable(nb) {
				continue
			}
			ni := g.index(nb)
			if closed[ni] {
				continue
			}
			tentative := n.g + 1
			if gScore[ni] >= 0 && tentative >= gScore[ni] {
				continue
			}
			gScore[ni] = tentative
			parent[ni] = n.idx
			seq++
			open.push(pathNode{idx: ni, g: tentative, f: tentative + nb.Manhattan(goal), seq: seq})
		}
	}

	return nil, false
}

// reconstructPath walks parent links from goal back to start and reverses.
func reconstructPath(g *Grid, parent []int, goalIdx int) []Cell {
	var path []Cell
	for i := goalIdx; i >= 0; i = parent[i] {
		path = append(path, g.cellAt(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
