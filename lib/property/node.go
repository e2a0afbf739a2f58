package property

import (
	"errors"
	"fmt"
	"strings"
)

// ChangeFunc is notified when a derived display field of a node changes.
// The field is one of "Name", "Type" or "Value".
type ChangeFunc func(n *Node, field string)

// Node is one property of a tree. Leaves carry either a Value or, when the payload
// could not be interpreted, Raw bytes and a Failure. Composite nodes (field-list
// structs, arrays, sets, maps) own their elements in Children.
type Node struct {
	Tag      *Tag
	Value    Value
	Children []*Node
	// Parent is a back reference only; children are owned by the parent's list.
	Parent *Node

	ArrayIndex int  // -1 unless the node is an element of a container
	Role       Role // map entries only

	Raw     []byte // opaque payload, written back verbatim
	Failure error  // why the payload is opaque

	original []byte // payload as read, written back if encoding fails
	watchers []ChangeFunc
}

// newNode returns a node that is not a container element.
func newNode(tag *Tag) *Node {
	return &Node{Tag: tag, ArrayIndex: -1}
}

// IsOpaque reports whether the payload is kept as raw bytes.
func (n *Node) IsOpaque() bool {
	return n.Value == nil && n.Failure != nil
}

// IsElement reports whether the node is a positional container element.
func (n *Node) IsElement() bool {
	return n.ArrayIndex >= 0
}

// Watch registers fn for change notifications of this node.
func (n *Node) Watch(fn ChangeFunc) {
	n.watchers = append(n.watchers, fn)
}

func (n *Node) notify(field string) {
	for _, fn := range n.watchers {
		fn(n, field)
	}
}

// setArrayIndex updates the element position; the display name depends on it
func (n *Node) setArrayIndex(i int) {
	n.ArrayIndex = i
	n.notify("Name")
}

// Clone returns a deep copy attached to the same parent. Watchers are not copied.
func (n *Node) Clone() *Node {
	c := &Node{
		Tag:        n.Tag.Clone(),
		Parent:     n.Parent,
		ArrayIndex: n.ArrayIndex,
		Role:       n.Role,
		Failure:    n.Failure,
		original:   n.original,
	}
	if n.Value != nil {
		c.Value = n.Value.Clone()
	}
	if n.Raw != nil {
		c.Raw = append([]byte(nil), n.Raw...)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			cc := child.Clone()
			cc.Parent = c
			c.Children[i] = cc
		}
	}
	return c
}

// Child returns the first direct child with the given display name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.DisplayName() == name {
			return c
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Display accessors
// --------------------------------------------------------------------------

// DisplayName returns the tag name, or the position for container elements.
func (n *Node) DisplayName() string {
	if n.ArrayIndex >= 0 {
		switch n.Role {
		case RoleKey:
			return fmt.Sprintf("[%d].Key", n.ArrayIndex)
		case RoleValue:
			return fmt.Sprintf("[%d].Value", n.ArrayIndex)
		default:
			return fmt.Sprintf("[%d]", n.ArrayIndex)
		}
	}
	return n.Tag.Name
}

// IsNameEditable reports whether SetName is allowed.
func (n *Node) IsNameEditable() bool {
	return n.ArrayIndex == -1
}

// SetName renames a property. Container elements have no name of their own.
func (n *Node) SetName(name string) error {
	if !n.IsNameEditable() {
		return fmt.Errorf("%w: %s is a container element", ErrNotEditable, n.DisplayName())
	}
	n.Tag.Name = name
	n.notify("Name")
	return nil
}

// DisplayType returns a C++ like type name.
func (n *Node) DisplayType() string {
	t := n.Tag
	switch t.Type {
	case TypeArray:
		var elem string
		if len(n.Children) > 0 {
			elem = n.Children[0].DisplayType()
		} else if h, ok := n.Value.(*ArrayHeader); ok && h.InnerTag != nil {
			elem = typeName(h.InnerTag)
		} else {
			elem = typeName(NewTag(t.InnerType))
		}
		return fmt.Sprintf("%s[%d]", elem, len(n.Children))
	case TypeSet:
		return "set<" + typeName(NewTag(t.InnerType)) + ">"
	case TypeMap:
		return "map<" + typeName(NewTag(t.InnerType)) + ", " + typeName(NewTag(t.ValueType)) + ">"
	}
	return typeName(t)
}

// typeName maps a tag to the name shown for non-container types
func typeName(t *Tag) string {
	switch t.Type {
	case TypeStruct:
		switch {
		case t.StructName == "":
			return "struct"
		case IsNativeStruct(t.StructName):
			return "F" + t.StructName
		default:
			return "struct " + t.StructName
		}
	case TypeEnum:
		if t.EnumName == "" {
			return "enum"
		}
		return "enum " + t.EnumName
	case TypeByte:
		if t.EnumName == "" || t.EnumName == TerminatorName {
			return "byte"
		}
		return "enum " + t.EnumName
	case TypeArray:
		return typeName(NewTag(t.InnerType)) + "[]"
	case TypeSet:
		return "set<" + typeName(NewTag(t.InnerType)) + ">"
	case TypeMap:
		return "map<" + typeName(NewTag(t.InnerType)) + ", " + typeName(NewTag(t.ValueType)) + ">"
	case TypeInt:
		return "int"
	case TypeUInt32:
		return "uint"
	case TypeInt64:
		return "int64"
	case TypeUInt64:
		return "uint64"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeStr:
		return "string"
	case TypeName:
		return "FName"
	case TypeText:
		return "FText"
	}
	return t.Type
}

// previewFields names the child shown as the value of a field-list struct
var previewFields = map[string]string{
	"FortActionKeyMapping": "ActionName",
	"Key":                  "KeyName",
}

// DisplayValue returns the value shown for the node. Opaque nodes show their failure.
func (n *Node) DisplayValue() string {
	switch {
	case n.Failure != nil:
		return failureText(n.Failure)
	case n.Tag.Type == TypeBool:
		if n.Tag.BoolVal != 0 {
			return "True"
		}
		return "False"
	case n.Tag.Type == TypeStruct && n.Value == nil:
		field, ok := previewFields[n.Tag.StructName]
		if !ok {
			field = "TagName"
		}
		if c := n.Child(field); c != nil {
			return c.DisplayValue()
		}
		return ""
	case n.Value == nil:
		return ""
	default:
		return n.Value.String()
	}
}

// failureText renders the reason a payload is opaque for display
func failureText(err error) string {
	switch {
	case errors.Is(err, ErrMapEntry):
		if multi, ok := err.(interface{ Unwrap() []error }); ok {
			for _, cause := range multi.Unwrap() {
				if cause != ErrMapEntry {
					return "Failed to deserialize child: " + failureText(cause)
				}
			}
		}
		return "Failed to deserialize child"
	case errors.Is(err, ErrUnsupportedType):
		return "Unsupported type"
	default:
		return err.Error()
	}
}

// IsEditable reports whether SetValue is supported.
func (n *Node) IsEditable() bool {
	return n.Tag.Type == TypeBool || (n.Value != nil && n.Value.Editable())
}

// SetValue parses s and replaces the node's value.
func (n *Node) SetValue(s string) error {
	if n.Value == nil {
		if n.Tag.Type != TypeBool {
			return fmt.Errorf("%w: %s", ErrNotEditable, n.DisplayName())
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			n.Tag.BoolVal = 1
		case "false", "0":
			n.Tag.BoolVal = 0
		default:
			return fmt.Errorf("%w: %q is not a bool", ErrInvalidValue, s)
		}
		n.notify("Value")
		return nil
	}

	if !n.Value.Editable() {
		return fmt.Errorf("%w: %s", ErrNotEditable, n.DisplayName())
	}
	if err := n.Value.Set(s); err != nil {
		return fmt.Errorf("%w: %q for %s: %w", ErrInvalidValue, s, n.DisplayType(), err)
	}
	n.notify("Value")

	// parents preview these fields as their own value
	if n.Parent != nil {
		for _, field := range []string{"ActionName", "KeyName", "TagName"} {
			if n.DisplayName() == field {
				n.Parent.notify("Value")
				break
			}
		}
	}
	return nil
}
