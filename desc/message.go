package desc

import (
	"fmt"
	"reflect"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/wire"
)

// Message is a message type: a namespace extended with an ordered field
// list, oneofs and installed extension fields.
type Message struct {
	Namespace

	fields     map[string]*Field
	fieldOrder []string
	fieldsByID map[int32]*Field

	oneofs     map[string]*OneOf
	oneofOrder []string

	// extensions are sister fields installed by extension declarations
	// elsewhere in the tree. They are reachable for encoding but are not
	// part of the declared field list.
	extensions []*Field
}

var _ container = (*Message)(nil)

// NewMessage creates a detached message type.
func NewMessage(name string) *Message {
	m := &Message{
		Namespace: Namespace{object: object{name: name}},
	}
	m.self = m

	return m
}

// Add nests an object in this message. Beyond the namespace kinds, a
// message accepts plain fields (which join the field list) and oneofs;
// a field carrying an extend target nests like any other namespace-level
// extension declaration.
func (m *Message) Add(obj Object) error {
	switch o := obj.(type) {
	case *Field:
		if o.extend == "" {
			return m.addField(o)
		}

		return m.store(o)
	case *OneOf:
		return m.addOneOf(o)
	default:
		return m.Namespace.Add(obj)
	}
}

func (m *Message) addField(f *Field) error {
	if _, exists := m.fields[f.name]; exists {
		return fmt.Errorf("%w: field %s in %s", errs.ErrDuplicateName, f.name, FullName(m))
	}
	if prev, exists := m.fieldsByID[f.id]; exists {
		return fmt.Errorf("%w: id %d shared by %s and %s in %s",
			errs.ErrDuplicateFieldID, f.id, prev.name, f.name, FullName(m))
	}

	if m.fields == nil {
		m.fields = make(map[string]*Field)
		m.fieldsByID = make(map[int32]*Field)
	}
	m.fields[f.name] = f
	m.fieldsByID[f.id] = f
	m.fieldOrder = append(m.fieldOrder, f.name)
	f.onAdd(m)

	// Join a oneof that declared this field by name.
	for _, oneofName := range m.oneofOrder {
		oo := m.oneofs[oneofName]
		for _, member := range oo.fieldNames {
			if member == f.name {
				oo.link(f)
			}
		}
	}

	return nil
}

func (m *Message) addOneOf(o *OneOf) error {
	if _, exists := m.oneofs[o.name]; exists {
		return fmt.Errorf("%w: oneof %s in %s", errs.ErrDuplicateName, o.name, FullName(m))
	}

	if m.oneofs == nil {
		m.oneofs = make(map[string]*OneOf)
	}
	m.oneofs[o.name] = o
	m.oneofOrder = append(m.oneofOrder, o.name)
	o.onAdd(m)

	// Link members that were added before the oneof.
	for _, name := range o.fieldNames {
		if f, exists := m.fields[name]; exists {
			o.link(f)
		}
	}

	return nil
}

// Field returns the declared field with the given name, or nil.
func (m *Message) Field(name string) *Field {
	if m.fields == nil {
		return nil
	}

	return m.fields[name]
}

// FieldByID returns the declared field with the given number, or nil.
func (m *Message) FieldByID(id int32) *Field {
	if m.fieldsByID == nil {
		return nil
	}

	return m.fieldsByID[id]
}

// EachField calls fn for every declared field in declaration order.
func (m *Message) EachField(fn func(*Field)) {
	for _, name := range m.fieldOrder {
		fn(m.fields[name])
	}
}

// OneOfByName returns the named oneof, or nil.
func (m *Message) OneOfByName(name string) *OneOf {
	if m.oneofs == nil {
		return nil
	}

	return m.oneofs[name]
}

// Extensions returns the extension fields installed into this message.
func (m *Message) Extensions() []*Field {
	return append([]*Field(nil), m.extensions...)
}

// addExtension installs a sister extension field.
func (m *Message) addExtension(f *Field) {
	m.extensions = append(m.extensions, f)
	f.onAdd(m)
}

// ResolveAll resolves fields, methods of nested services, nested types
// and finally this message.
func (m *Message) ResolveAll() error {
	for _, name := range m.fieldOrder {
		if err := m.fields[name].Resolve(); err != nil {
			return err
		}
	}
	for _, f := range m.extensions {
		if err := f.Resolve(); err != nil {
			return err
		}
	}

	return m.Namespace.ResolveAll()
}

// Encode emits value's present fields in declaration order. The value is
// a map keyed by field name; absent and nil entries are skipped.
func (m *Message) Encode(value any, w *wire.Writer) error {
	fieldValues, err := asMessageMap(value)
	if err != nil {
		return fmt.Errorf("%s: %w", FullName(m), err)
	}

	for _, name := range m.fieldOrder {
		v, present := fieldValues[name]
		if !present || v == nil {
			continue
		}
		if err := m.fields[name].Encode(v, w); err != nil {
			return err
		}
	}
	for _, ext := range m.extensions {
		v, present := fieldValues[ext.name]
		if !present || v == nil {
			continue
		}
		if err := ext.Encode(v, w); err != nil {
			return err
		}
	}

	return nil
}

// EncodeDelimited emits a varint byte-length prefix followed by the
// encoded body. The length is unknown up front, so the body is written
// into a forked sub-stream first.
func (m *Message) EncodeDelimited(value any, w *wire.Writer) error {
	w.Fork()
	if err := m.Encode(value, w); err != nil {
		w.Reset()
		return err
	}
	body := w.Finish()
	w.Reset()
	w.Bytes(body)

	return nil
}

// asMessageMap normalizes a message value to map[string]any. A nil value
// encodes as the empty message.
func asMessageMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: cannot use %T as message value", errs.ErrInvalidValue, value)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, nil
}
