package desc

// OneOf names a group of fields of which at most one is set. It holds
// weak links to its member fields; the fields themselves stay owned by
// the message.
type OneOf struct {
	object

	fieldNames []string
	fields     []*Field
}

var _ Object = (*OneOf)(nil)

// NewOneOf creates a oneof with the given member field names. Members
// are linked when the oneof and its fields are both added to a message.
func NewOneOf(name string, fieldNames ...string) *OneOf {
	return &OneOf{
		object:     object{name: name},
		fieldNames: append([]string(nil), fieldNames...),
	}
}

// FieldNames returns the declared member names.
func (o *OneOf) FieldNames() []string {
	return append([]string(nil), o.fieldNames...)
}

// Fields returns the linked member fields.
func (o *OneOf) Fields() []*Field {
	return append([]*Field(nil), o.fields...)
}

// ToJSON returns nil: oneofs export through their owning message's
// oneofs map, which uses the dedicated OneOfJSON shape.
func (o *OneOf) ToJSON() *ObjectJSON {
	return nil
}

// link records a member field and back-links it.
func (o *OneOf) link(f *Field) {
	for _, existing := range o.fields {
		if existing == f {
			return
		}
	}
	o.fields = append(o.fields, f)
	f.partOf = o

	found := false
	for _, name := range o.fieldNames {
		if name == f.name {
			found = true
			break
		}
	}
	if !found {
		o.fieldNames = append(o.fieldNames, f.name)
	}
}
