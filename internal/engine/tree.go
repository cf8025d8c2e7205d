package engine

import (
	"strings"

	"github.com/Veraticus/sapra/internal/model"
)

// Node is one entry of the navigation tree.
type Node struct {
	Selection model.Selection
	ID        string
	Name      string
	Children  []*Node
}

// Label returns the text shown for the node.
func (n *Node) Label() string {
	if n.ID == "" {
		return n.Name
	}
	return n.ID + " - " + n.Name
}

// Tree is the navigation tree: a root for all systems, one node per system and
// one leaf per subsystem reference.
type Tree struct {
	Root *Node
}

// NavigationTree builds the navigation tree from a hierarchy in first-seen order.
func NavigationTree(h *model.Hierarchy) Tree {
	root := &Node{Selection: model.AllSystems(), Name: "All Systems"}

	for _, system := range h.Systems() {
		sysNode := &Node{
			Selection: model.SystemScope(system.ID),
			ID:        system.ID,
			Name:      system.Name,
		}
		for _, ref := range system.Subsystems {
			sysNode.Children = append(sysNode.Children, &Node{
				Selection: model.SubsystemScope(ref.ID, system.ID),
				ID:        ref.ID,
				Name:      ref.Name,
			})
		}
		root.Children = append(root.Children, sysNode)
	}

	return Tree{Root: root}
}

// Filter returns a copy of the tree holding only nodes whose id or name contains
// term, case-insensitively, plus their ancestors. A matching system keeps all of
// its subsystems. An empty term returns the tree unchanged.
func (t Tree) Filter(term string) Tree {
	term = model.Key(term)
	if term == "" || t.Root == nil {
		return t
	}

	root := &Node{Selection: t.Root.Selection, ID: t.Root.ID, Name: t.Root.Name}
	for _, sysNode := range t.Root.Children {
		if matches(sysNode, term) {
			root.Children = append(root.Children, sysNode)
			continue
		}

		var kept []*Node
		for _, leaf := range sysNode.Children {
			if matches(leaf, term) {
				kept = append(kept, leaf)
			}
		}
		if len(kept) > 0 {
			root.Children = append(root.Children, &Node{
				Selection: sysNode.Selection,
				ID:        sysNode.ID,
				Name:      sysNode.Name,
				Children:  kept,
			})
		}
	}

	return Tree{Root: root}
}

// Flatten returns the nodes in display order with their depth.
func (t Tree) Flatten() []FlatNode {
	if t.Root == nil {
		return nil
	}
	var out []FlatNode
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		out = append(out, FlatNode{Node: n, Depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(t.Root, 0)
	return out
}

// FlatNode is a tree node paired with its depth.
type FlatNode struct {
	Node  *Node
	Depth int
}

func matches(n *Node, term string) bool {
	return strings.Contains(model.Key(n.ID), term) || strings.Contains(model.Key(n.Name), term)
}
