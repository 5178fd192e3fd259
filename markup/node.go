package markup

import (
	"strconv"
	"strings"
)

// RootName is the tag name of the synthetic element at the top of every tree.
const RootName = "root"

// A NodeType is the type of a Node.
type NodeType uint32

const (
	ErrorNode NodeType = iota
	ElementNode
	TextNode
)

// String returns a string representation of the NodeType.
func (n NodeType) String() string {
	switch n {
	case ErrorNode:
		return "Error Node"
	case ElementNode:
		return "Element Node"
	case TextNode:
		return "Text Node"
	}
	return "Invalid Node (" + strconv.Itoa(int(n)) + ")"
}

type TreeNode struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
}

// A Node is either an element, with a tag name and attributes, or a run of text.
type Node struct {
	TreeNode
	Type NodeType

	// Name is the tag name of an element
	Name string

	// Attr holds the element attributes with unique keys
	Attr []Attribute

	// SelfClosing is set for elements written as <name/>. They never have children.
	SelfClosing bool

	// Data is the literal text of a text node
	Data string

	// Offset is the byte offset in the source of the token that created the node
	Offset int
}

// NewElement returns a detached element node.
func NewElement(name string, attrs []Attribute) *Node {
	return &Node{Type: ElementNode, Name: name, Attr: attrs}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// AppendChild adds a node child as the last child of parent.
//
// It will panic if child already has a parent or siblings.
func (parent *Node) AppendChild(child *Node) {
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		panic("AppendChild called for an already attached child Node")
	}
	last := parent.LastChild
	if last != nil {
		last.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child

	child.Parent = parent
	child.PrevSibling = last
}

// Children returns the children of n in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// Attribute returns the raw value of the attribute key.
func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// tagString returns the tag name and the attributes as key:value pairs.
func (n *Node) tagString() string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	for _, a := range n.Attr {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte(':')
		sb.WriteString(a.Val)
	}
	return sb.String()
}

// String returns the opening line of an element, or the text of a text node.
func (n *Node) String() string {
	switch n.Type {
	case ErrorNode:
		return "ErrorNode"
	case ElementNode:
		return "<" + n.tagString() + ">"
	case TextNode:
		return n.Data
	}
	return "Invalid(" + strconv.Itoa(int(n.Type)) + ")"
}
