package identity

// unionFind is a disjoint-set structure over record indices with path
// compression and union by size. Near-linear in the number of operations.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the root of x, compressing the path along the way.
func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union merges the sets containing x and y.
func (u *unionFind) union(x, y int) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return
	}
	if u.size[rx] < u.size[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	u.size[rx] += u.size[ry]
}

// clusters groups indices 0..n-1 by their root, preserving input order
// within each cluster. Cluster order follows the lowest member index.
func (u *unionFind) clusters() [][]int {
	byRoot := make(map[int][]int)
	var order []int
	for i := range u.parent {
		root := u.find(i)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], i)
	}

	result := make([][]int, 0, len(order))
	for _, root := range order {
		result = append(result, byRoot[root])
	}
	return result
}
