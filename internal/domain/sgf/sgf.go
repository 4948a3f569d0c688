package sgf

// GameTree is the main line of a record. Variations are not kept: the viewer
// only works on a single linear history.
type GameTree struct {
	Nodes []Node
}

// Node is one ";" node of a record, e.g. B[pd]C[...]. A property may repeat values (AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

func NewNode() Node {
	return Node{Properties: make(map[string][]string)}
}

func (n Node) Set(key string, values ...string) {
	n.Properties[key] = values
}

// SGF is the root of a record file.
type SGF struct {
	Root *GameTree
}
