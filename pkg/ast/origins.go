package ast

// AnnotateOrigins assigns the provided source path to every node reachable from root.
// The table map may be nil; when provided it is populated with node -> path entries.
// Nodes already present keep their first origin.
func AnnotateOrigins(root Node, path string, table map[Node]string) map[Node]string {
	if table == nil {
		table = make(map[Node]string)
	}
	if root == nil || path == "" {
		return table
	}
	Inspect(root, func(n Node) bool {
		if n == nil {
			return false
		}
		if _, ok := table[n]; !ok {
			table[n] = path
		}
		return true
	})
	return table
}
