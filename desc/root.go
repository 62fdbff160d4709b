package desc

import (
	"fmt"
	"strings"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/internal/hash"
)

// Root is the unnamed top-level namespace of a schema tree. Beyond plain
// namespace behavior it installs extension fields and maintains an
// xxHash64 index of fully-qualified names for O(1) symbol lookup.
type Root struct {
	Namespace

	index map[uint64]Object
}

var _ container = (*Root)(nil)

// NewRoot creates an empty schema root.
func NewRoot() *Root {
	r := &Root{}
	r.self = r

	return r
}

// ResolveAll installs extension declarations, resolves the entire tree
// depth-first, then rebuilds the symbol index. The tree is treated as
// immutable afterwards; concurrent readers are safe once ResolveAll has
// returned.
func (r *Root) ResolveAll() error {
	if err := r.installExtensions(&r.Namespace); err != nil {
		return err
	}
	if err := r.Namespace.ResolveAll(); err != nil {
		return err
	}

	r.index = make(map[uint64]Object)
	r.indexTree(&r.Namespace)

	return nil
}

// installExtensions walks the tree and, for every extension declaration
// that is not yet paired, creates the sister field inside the extended
// type. The declaration and the sister reference each other weakly.
func (r *Root) installExtensions(n *Namespace) error {
	var werr error
	n.Each(func(obj Object) {
		if werr != nil {
			return
		}
		switch o := obj.(type) {
		case *Field:
			if o.extensionField != nil {
				return
			}
			werr = r.installExtension(n, o)
		case container:
			werr = r.installExtensions(o.ns())
		}
	})

	return werr
}

func (r *Root) installExtension(n *Namespace, decl *Field) error {
	target, ok := n.Lookup(decl.extend).(*Message)
	if !ok {
		return fmt.Errorf("%w: extend target %s of %s", errs.ErrUnresolvableType, decl.extend, FullName(decl))
	}
	if prev := target.FieldByID(decl.id); prev != nil {
		return fmt.Errorf("%w: id %d already declared in %s", errs.ErrDuplicateFieldID, decl.id, FullName(target))
	}

	sister, err := NewField(decl.name, decl.id, decl.typeName)
	if err != nil {
		return err
	}
	if err := sister.SetRule(decl.rule); err != nil {
		return err
	}
	for _, opt := range decl.optOrder {
		sister.SetOption(opt, decl.options[opt], false)
	}

	sister.declaringField = decl
	decl.extensionField = sister
	target.addExtension(sister)

	return nil
}

// indexTree records every object's fully-qualified name hash.
func (r *Root) indexTree(n *Namespace) {
	n.Each(func(obj Object) {
		r.index[hash.ID(FullName(obj))] = obj
		if msg, ok := obj.(*Message); ok {
			msg.EachField(func(f *Field) {
				r.index[hash.ID(FullName(f))] = f
			})
		}
		if c, ok := obj.(container); ok {
			r.indexTree(c.ns())
		}
	})
}

// LookupFull resolves a fully-qualified dotted name (with or without the
// leading dot) through the symbol index, falling back to tree lookup
// before ResolveAll has run or on a hash collision.
func (r *Root) LookupFull(fullName string) Object {
	key := fullName
	if !strings.HasPrefix(key, ".") {
		key = "." + key
	}

	if r.index != nil {
		if obj, ok := r.index[hash.ID(key)]; ok && FullName(obj) == key {
			return obj
		}
	}

	return r.Lookup(strings.TrimPrefix(key, "."))
}
