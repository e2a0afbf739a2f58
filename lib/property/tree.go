package property

import (
	"fmt"
	"slices"
	"strings"
)

// Tree is the ordered list of top-level properties of a save file.
type Tree struct {
	Roots []*Node
}

// siblings returns the list n lives in
func (t *Tree) siblings(n *Node) []*Node {
	if n.Parent != nil {
		return n.Parent.Children
	}
	return t.Roots
}

func (t *Tree) setSiblings(n *Node, list []*Node) {
	if n.Parent != nil {
		n.Parent.Children = list
	} else {
		t.Roots = list
	}
}

// Duplicate inserts a deep copy of n after it. For map entries the whole key/value
// pair is copied. Element indices after the insertion point are shifted up.
func (t *Tree) Duplicate(n *Node) (*Node, error) {
	list := t.siblings(n)
	idx := slices.Index(list, n)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s is not part of the tree", ErrNodeNotFound, n.DisplayName())
	}

	var inserted []*Node
	var at int
	switch n.Role {
	case RoleKey:
		if idx+1 >= len(list) {
			return nil, fmt.Errorf("%w: key %s has no value", ErrMalformed, n.DisplayName())
		}
		inserted = []*Node{n.Clone(), list[idx+1].Clone()}
		at = idx + 2
	case RoleValue:
		if idx == 0 {
			return nil, fmt.Errorf("%w: value %s has no key", ErrMalformed, n.DisplayName())
		}
		inserted = []*Node{list[idx-1].Clone(), n.Clone()}
		at = idx + 1
	default:
		inserted = []*Node{n.Clone()}
		at = idx + 1
	}

	list = slices.Insert(list, at, inserted...)
	t.setSiblings(n, list)

	for _, s := range list[at:] {
		if s.ArrayIndex != -1 {
			s.setArrayIndex(s.ArrayIndex + 1)
		}
	}
	if n.Parent != nil {
		n.Parent.notify("Type")
	}

	if n.Role == RoleValue {
		return inserted[1], nil
	}
	return inserted[0], nil
}

// Delete removes n from the tree. For map entries the whole pair is removed.
// Element indices after the removal point are shifted down.
func (t *Tree) Delete(n *Node) error {
	list := t.siblings(n)
	idx := slices.Index(list, n)
	if idx < 0 {
		return fmt.Errorf("%w: %s is not part of the tree", ErrNodeNotFound, n.DisplayName())
	}

	from, to := idx, idx+1
	switch n.Role {
	case RoleKey:
		if idx+1 >= len(list) {
			return fmt.Errorf("%w: key %s has no value", ErrMalformed, n.DisplayName())
		}
		to = idx + 2
	case RoleValue:
		if idx == 0 {
			return fmt.Errorf("%w: value %s has no key", ErrMalformed, n.DisplayName())
		}
		from = idx - 1
	}

	list = slices.Delete(list, from, to)
	t.setSiblings(n, list)

	for _, s := range list[from:] {
		if s.ArrayIndex != -1 {
			s.setArrayIndex(s.ArrayIndex - 1)
		}
	}
	if n.Parent != nil {
		n.Parent.notify("Type")
	}
	return nil
}

// Find resolves a "/" separated path of display names, e.g. "Settings/[2].Key".
func (t *Tree) Find(path string) (*Node, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	list := t.Roots
	var found *Node
	for _, seg := range segments {
		found = nil
		for _, n := range list {
			if n.DisplayName() == seg {
				found = n
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, path)
		}
		list = found.Children
	}
	return found, nil
}

// Path returns the "/" separated display name path of n.
func Path(n *Node) string {
	var parts []string
	for c := n; c != nil; c = c.Parent {
		parts = append(parts, c.DisplayName())
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}

// Walk visits every node depth first. Returning false skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(list []*Node, depth int)
	walk = func(list []*Node, depth int) {
		for _, n := range list {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.Roots, 0)
}
