package index

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// firstChildOfKind returns the first direct child with the given kind
func firstChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// collectTypeIdentifiers adds every identifier appearing inside a type
// node to the set. For a generic type like List<Certificate> this
// records both List and Certificate, which is what the coupling metrics
// want: any class name mentioned in the type is a reference.
func collectTypeIdentifiers(typeNode *tree_sitter.Node, source []byte, set map[string]bool) {
	if typeNode == nil {
		return
	}
	walkNodes(typeNode, func(n *tree_sitter.Node) {
		kind := n.Kind()
		if kind == "identifier" || kind == "type_identifier" {
			set[n.Utf8Text(source)] = true
		}
	})
}

// nodeLines returns the 1-based start and end lines of a node
func nodeLines(node *tree_sitter.Node) (int, int) {
	return int(node.StartPosition().Row) + 1, int(node.EndPosition().Row) + 1
}

// fieldText returns the text of a named field child, or ""
func fieldText(node *tree_sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}
