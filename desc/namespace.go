package desc

import (
	"fmt"
	"strings"

	"github.com/arloliu/protowire/errs"
)

// Namespace is the hierarchical container of the schema tree. Message,
// Service and Root embed it, so anything with nested entries shares the
// same add/remove/lookup machinery.
type Namespace struct {
	object

	// self is the outermost object embedding this namespace. Children
	// record self as their parent, so a field nested in a Message sees
	// the *Message, not the embedded Namespace.
	self Object

	nested map[string]Object
	order  []string
}

var _ container = (*Namespace)(nil)

// NewNamespace creates a detached namespace.
func NewNamespace(name string) *Namespace {
	n := &Namespace{object: object{name: name}}
	n.self = n

	return n
}

func (n *Namespace) ns() *Namespace {
	return n
}

// Get returns the nested object with the given simple name, or nil.
func (n *Namespace) Get(name string) Object {
	if n.nested == nil {
		return nil
	}

	return n.nested[name]
}

// Len returns the number of nested objects.
func (n *Namespace) Len() int {
	return len(n.order)
}

// Each calls fn for every nested object in insertion order.
func (n *Namespace) Each(fn func(Object)) {
	for _, name := range n.order {
		fn(n.nested[name])
	}
}

// Add nests an object. The closed set of nestable kinds is Enum,
// Message, Service, Namespace and Field; a Field is only accepted at
// namespace level when it declares an extend target.
//
// A name collision with a plain Namespace is upgraded when the new
// object is a Message: the namespace's children move into the message
// and the namespace is removed. Any other collision is an error.
func (n *Namespace) Add(obj Object) error {
	switch o := obj.(type) {
	case *Field:
		if o.extend == "" {
			return fmt.Errorf("%w: field %s", errs.ErrOrphanExtension, o.name)
		}
	case *Enum, *Message, *Service, *Namespace:
	default:
		return fmt.Errorf("%w: %T", errs.ErrInvalidNested, obj)
	}

	return n.store(obj)
}

// store performs collision handling and installation; Message.Add reuses
// it for fields.
func (n *Namespace) store(obj Object) error {
	if prev := n.Get(obj.Name()); prev != nil {
		prevNS, plain := prev.(*Namespace)
		msg, isMsg := obj.(*Message)
		if !plain || !isMsg {
			return fmt.Errorf("%w: %s in %s", errs.ErrDuplicateName, obj.Name(), FullName(n.self))
		}

		// Upgrade: move the namespace's children into the new message.
		children := make([]Object, 0, prevNS.Len())
		prevNS.Each(func(child Object) { children = append(children, child) })
		for _, child := range children {
			if err := prevNS.Remove(child); err != nil {
				return err
			}
			if err := msg.Add(child); err != nil {
				return err
			}
		}
		if err := n.Remove(prevNS); err != nil {
			return err
		}
	}

	if n.nested == nil {
		n.nested = make(map[string]Object)
	}
	n.nested[obj.Name()] = obj
	n.order = append(n.order, obj.Name())
	obj.onAdd(n.self)

	return nil
}

// Remove detaches a nested object. The object must be a member.
func (n *Namespace) Remove(obj Object) error {
	if n.Get(obj.Name()) != obj {
		return fmt.Errorf("%w: %s", errs.ErrNotMember, obj.Name())
	}

	delete(n.nested, obj.Name())
	for i, name := range n.order {
		if name == obj.Name() {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	if len(n.nested) == 0 {
		n.nested = nil
	}
	obj.onRemove(n.self)

	return nil
}

// Lookup resolves a dotted path. An empty path yields nil. A leading dot
// makes the path absolute, restarting at the root; otherwise the path is
// resolved relative to this namespace, climbing toward the root when a
// segment does not match locally.
func (n *Namespace) Lookup(path string) Object {
	if path == "" {
		return nil
	}

	return n.lookup(strings.Split(path, "."), false)
}

func (n *Namespace) lookup(parts []string, parentChecked bool) Object {
	if len(parts) == 0 {
		return n.self
	}
	if parts[0] == "" {
		return n.root().lookup(parts[1:], true)
	}

	if found := n.Get(parts[0]); found != nil {
		if len(parts) == 1 {
			return found
		}
		if c, ok := found.(container); ok {
			if obj := c.ns().lookup(parts[1:], true); obj != nil {
				return obj
			}
		}
	}

	if parentChecked {
		return nil
	}
	parent, ok := n.parent.(container)
	if !ok {
		return nil
	}

	return parent.ns().lookup(parts, false)
}

// root returns the topmost namespace of this tree.
func (n *Namespace) root() *Namespace {
	cur := n
	for {
		parent, ok := cur.parent.(container)
		if !ok {
			return cur
		}
		cur = parent.ns()
	}
}

// Define creates the namespaces along a dotted path as needed and
// returns the terminal one. A leading dot anchors the path at the root.
// A path segment that exists as something other than a namespace-like
// object is an error.
func (n *Namespace) Define(path string) (*Namespace, error) {
	parts := strings.Split(path, ".")
	ptr := n
	if len(parts) > 0 && parts[0] == "" {
		ptr = n.root()
		parts = parts[1:]
	}

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty path segment in %q", errs.ErrInvalidNested, path)
		}
		next := ptr.Get(part)
		if next == nil {
			child := NewNamespace(part)
			if err := ptr.Add(child); err != nil {
				return nil, err
			}
			ptr = child

			continue
		}
		c, ok := next.(container)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a namespace", errs.ErrDuplicateName, FullName(next))
		}
		ptr = c.ns()
	}

	return ptr, nil
}

// ResolveAll resolves every descendant depth-first, then this namespace.
func (n *Namespace) ResolveAll() error {
	for _, name := range n.order {
		if err := resolveDeep(n.nested[name]); err != nil {
			return err
		}
	}

	return n.self.Resolve()
}

// resolveDeep recursively resolves a subtree.
func resolveDeep(obj Object) error {
	if deep, ok := obj.(interface{ ResolveAll() error }); ok {
		return deep.ResolveAll()
	}

	return obj.Resolve()
}
