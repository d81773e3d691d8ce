// Package stringlist provides the ordered string collection passed to
// pipeline stages. Lists are built once per boundary call and never mutated
// after being handed over.
package stringlist

// Node is a single list entry.
type Node struct {
	Value string
	next  *Node
}

// Next returns the following node, or nil at the end of the list.
func (n *Node) Next() *Node { return n.next }

// List is an append-only singly linked list of strings. The zero value and
// nil are both the empty list.
type List struct {
	head *Node
	tail *Node
}

// New builds a list from the given values, preserving their order.
func New(values ...string) *List {
	l := &List{}
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Append adds a value at the end of the list.
func (l *List) Append(value string) {
	n := &Node{Value: value}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
}

// Head returns the first node, or nil for an empty list.
func (l *List) Head() *Node {
	if l == nil {
		return nil
	}
	return l.head
}

// Len returns the number of entries. Safe on a nil list.
func (l *List) Len() int {
	n := 0
	for node := l.Head(); node != nil; node = node.Next() {
		n++
	}
	return n
}

// Strings returns the entries as a slice in list order. Safe on a nil list;
// an empty list yields nil.
func (l *List) Strings() []string {
	var out []string
	for node := l.Head(); node != nil; node = node.Next() {
		out = append(out, node.Value)
	}
	return out
}

// Contains reports whether value is present in the list.
func (l *List) Contains(value string) bool {
	for node := l.Head(); node != nil; node = node.Next() {
		if node.Value == value {
			return true
		}
	}
	return false
}
