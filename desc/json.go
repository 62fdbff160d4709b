package desc

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/protowire/errs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ObjectJSON is the flat schema JSON dialect shared by every reflection
// kind. Exactly one discriminator decides the kind: id for fields,
// values for enums, fields or oneofs for message types, methods for services,
// requestType for methods; everything else is a namespace.
type ObjectJSON struct {
	Options map[string]any `json:"options,omitempty"`

	// Field
	ID      *int32 `json:"id,omitempty"`
	Type    string `json:"type,omitempty"`
	Rule    string `json:"rule,omitempty"`
	Extend  string `json:"extend,omitempty"`
	KeyType string `json:"keyType,omitempty"`

	// Enum
	Values map[string]int32 `json:"values,omitempty"`

	// Message
	Fields map[string]*ObjectJSON `json:"fields,omitempty"`
	Oneofs map[string]*OneOfJSON  `json:"oneofs,omitempty"`

	// Service
	Methods map[string]*ObjectJSON `json:"methods,omitempty"`

	// Method
	RequestType  string `json:"requestType,omitempty"`
	ResponseType string `json:"responseType,omitempty"`

	// Namespace
	Nested map[string]*ObjectJSON `json:"nested,omitempty"`

	// Insertion orders captured during export. Marshaling follows them;
	// hand-built values with no recorded order marshal in sorted order.
	optOrder    []string
	valueOrder  []string
	fieldOrder  []string
	oneofOrder  []string
	methodOrder []string
	nestedOrder []string
}

// OneOfJSON is the JSON form of a oneof: the ordered member field names.
type OneOfJSON struct {
	Oneof   []string       `json:"oneof"`
	Options map[string]any `json:"options,omitempty"`
}

// jsonKind is the classification result for one JSON body.
type jsonKind uint8

const (
	kindNamespace jsonKind = iota
	kindField
	kindEnum
	kindMessage
	kindService
	kindMethod
)

// classify applies the dialect discriminators in fixed order.
func classify(body *ObjectJSON) jsonKind {
	switch {
	case body.ID != nil:
		return kindField
	case body.Values != nil:
		return kindEnum
	case body.Fields != nil || body.Oneofs != nil:
		return kindMessage
	case body.Methods != nil:
		return kindService
	case body.RequestType != "":
		return kindMethod
	default:
		return kindNamespace
	}
}

// FromJSON parses the schema JSON dialect into a new root. Call
// ResolveAll on the result before encoding.
func FromJSON(data []byte) (*Root, error) {
	var body ObjectJSON
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidJSON, err)
	}

	root := NewRoot()
	applyOptions(root, body.Options)
	if err := root.AddJSON(body.Nested); err != nil {
		return nil, err
	}

	return root, nil
}

// AddJSON constructs and adds one object per (name, body) entry. Bodies
// are classified by their discriminators; sibling names are processed in
// sorted order since JSON maps carry no order of their own.
func (n *Namespace) AddJSON(nested map[string]*ObjectJSON) error {
	adder, ok := n.self.(interface{ Add(Object) error })
	if !ok {
		adder = n
	}

	for _, name := range sortedKeys(nested) {
		body := nested[name]
		if body == nil {
			return fmt.Errorf("%w: %s has no body", errs.ErrInvalidJSON, name)
		}
		obj, err := objectFromJSON(name, body)
		if err != nil {
			return err
		}
		if err := adder.Add(obj); err != nil {
			return err
		}
	}

	return nil
}

// objectFromJSON builds a reflection object from one classified body.
func objectFromJSON(name string, body *ObjectJSON) (Object, error) {
	switch classify(body) {
	case kindField:
		return fieldFromJSON(name, body)
	case kindEnum:
		return enumFromJSON(name, body)
	case kindMessage:
		return messageFromJSON(name, body)
	case kindService:
		return serviceFromJSON(name, body)
	case kindMethod:
		return methodFromJSON(name, body)
	default:
		return namespaceFromJSON(name, body)
	}
}

func fieldFromJSON(name string, body *ObjectJSON) (*Field, error) {
	if body.Type == "" {
		return nil, fmt.Errorf("%w: field %s has no type", errs.ErrInvalidJSON, name)
	}

	f, err := NewField(name, *body.ID, body.Type)
	if err != nil {
		return nil, err
	}
	if err := f.SetRule(body.Rule); err != nil {
		return nil, err
	}
	if body.Extend != "" {
		f.SetExtend(body.Extend)
	}
	if body.KeyType != "" {
		if err := f.SetKeyType(body.KeyType); err != nil {
			return nil, err
		}
	}
	applyOptions(f, body.Options)

	return f, nil
}

func enumFromJSON(name string, body *ObjectJSON) (*Enum, error) {
	e := NewEnum(name)

	// Sort by number then name so ingestion is deterministic.
	names := sortedKeys(body.Values)
	sort.SliceStable(names, func(i, j int) bool {
		return body.Values[names[i]] < body.Values[names[j]]
	})
	for _, valueName := range names {
		if err := e.AddValue(valueName, body.Values[valueName]); err != nil {
			return nil, err
		}
	}
	applyOptions(e, body.Options)

	return e, nil
}

func messageFromJSON(name string, body *ObjectJSON) (*Message, error) {
	m := NewMessage(name)

	// Fields in id order.
	fieldNames := sortedKeys(body.Fields)
	sort.SliceStable(fieldNames, func(i, j int) bool {
		return fieldID(body.Fields[fieldNames[i]]) < fieldID(body.Fields[fieldNames[j]])
	})
	for _, fieldName := range fieldNames {
		fieldBody := body.Fields[fieldName]
		if fieldBody == nil || fieldBody.ID == nil {
			return nil, fmt.Errorf("%w: field %s.%s has no id", errs.ErrInvalidJSON, name, fieldName)
		}
		f, err := fieldFromJSON(fieldName, fieldBody)
		if err != nil {
			return nil, err
		}
		if err := m.Add(f); err != nil {
			return nil, err
		}
	}

	for _, oneofName := range sortedKeys(body.Oneofs) {
		oneofBody := body.Oneofs[oneofName]
		if oneofBody == nil {
			return nil, fmt.Errorf("%w: oneof %s.%s has no body", errs.ErrInvalidJSON, name, oneofName)
		}
		oo := NewOneOf(oneofName, oneofBody.Oneof...)
		applyOptions(oo, oneofBody.Options)
		if err := m.Add(oo); err != nil {
			return nil, err
		}
	}

	if err := m.AddJSON(body.Nested); err != nil {
		return nil, err
	}
	applyOptions(m, body.Options)

	return m, nil
}

func serviceFromJSON(name string, body *ObjectJSON) (*Service, error) {
	s := NewService(name)

	for _, methodName := range sortedKeys(body.Methods) {
		methodBody := body.Methods[methodName]
		if methodBody == nil || classify(methodBody) != kindMethod {
			return nil, fmt.Errorf("%w: method %s.%s", errs.ErrInvalidJSON, name, methodName)
		}
		method, err := methodFromJSON(methodName, methodBody)
		if err != nil {
			return nil, err
		}
		if err := s.AddMethod(method); err != nil {
			return nil, err
		}
	}

	if err := s.AddJSON(body.Nested); err != nil {
		return nil, err
	}
	applyOptions(s, body.Options)

	return s, nil
}

func methodFromJSON(name string, body *ObjectJSON) (*Method, error) {
	m, err := NewMethod(name, body.RequestType, body.ResponseType)
	if err != nil {
		return nil, err
	}
	applyOptions(m, body.Options)

	return m, nil
}

func namespaceFromJSON(name string, body *ObjectJSON) (*Namespace, error) {
	n := NewNamespace(name)
	if err := n.AddJSON(body.Nested); err != nil {
		return nil, err
	}
	applyOptions(n, body.Options)

	return n, nil
}

func applyOptions(obj Object, opts map[string]any) {
	for _, name := range sortedKeys(opts) {
		obj.SetOption(name, opts[name], false)
	}
}

func fieldID(body *ObjectJSON) int32 {
	if body == nil || body.ID == nil {
		return -1
	}

	return *body.ID
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// ToJSON converts a namespace for export. A hidden namespace yields nil.
// An explicitly visible namespace emits everything; otherwise only
// children that themselves exported survive, and a namespace with none
// is omitted entirely.
func (n *Namespace) ToJSON() *ObjectJSON {
	if n.hidden() {
		return nil
	}

	nested, nestedOrder := n.nestedJSON()
	opts, optOrder := n.jsonOptions()
	if !n.exported() && len(nested) == 0 {
		return nil
	}

	return &ObjectJSON{
		Options:     opts,
		Nested:      nested,
		optOrder:    optOrder,
		nestedOrder: nestedOrder,
	}
}

// nestedJSON exports surviving children in insertion order.
func (n *Namespace) nestedJSON() (map[string]*ObjectJSON, []string) {
	var (
		out   map[string]*ObjectJSON
		order []string
	)
	n.Each(func(obj Object) {
		j := obj.ToJSON()
		if j == nil {
			return
		}
		if out == nil {
			out = make(map[string]*ObjectJSON)
		}
		out[obj.Name()] = j
		order = append(order, obj.Name())
	})

	return out, order
}

// ToJSON converts a field declaration.
func (f *Field) ToJSON() *ObjectJSON {
	if f.hidden() {
		return nil
	}

	id := f.id
	opts, optOrder := f.jsonOptions()

	return &ObjectJSON{
		ID:       &id,
		Type:     f.typeName,
		Rule:     f.rule,
		Extend:   f.extend,
		KeyType:  f.keyType,
		Options:  opts,
		optOrder: optOrder,
	}
}

// ToJSON converts an enum with its values in declaration order.
func (e *Enum) ToJSON() *ObjectJSON {
	if e.hidden() {
		return nil
	}

	values := make(map[string]int32, e.Len())
	order := make([]string, 0, e.Len())
	e.Each(func(name string, number int32) {
		values[name] = number
		order = append(order, name)
	})
	opts, optOrder := e.jsonOptions()

	return &ObjectJSON{
		Values:     values,
		Options:    opts,
		valueOrder: order,
		optOrder:   optOrder,
	}
}

// ToJSON converts a message type: fields and oneofs in declaration
// order, nested objects per the namespace export rules.
func (m *Message) ToJSON() *ObjectJSON {
	if m.hidden() {
		return nil
	}

	fields := make(map[string]*ObjectJSON, len(m.fieldOrder))
	fieldOrder := make([]string, 0, len(m.fieldOrder))
	m.EachField(func(f *Field) {
		if j := f.ToJSON(); j != nil {
			fields[f.Name()] = j
			fieldOrder = append(fieldOrder, f.Name())
		}
	})

	var (
		oneofs     map[string]*OneOfJSON
		oneofOrder []string
	)
	for _, name := range m.oneofOrder {
		oo := m.oneofs[name]
		if oo.hidden() {
			continue
		}
		if oneofs == nil {
			oneofs = make(map[string]*OneOfJSON)
		}
		opts, _ := oo.jsonOptions()
		oneofs[name] = &OneOfJSON{Oneof: append([]string(nil), oo.fieldNames...), Options: opts}
		oneofOrder = append(oneofOrder, name)
	}

	nested, nestedOrder := m.nestedJSON()
	opts, optOrder := m.jsonOptions()

	return &ObjectJSON{
		Fields:      fields,
		Oneofs:      oneofs,
		Nested:      nested,
		Options:     opts,
		fieldOrder:  fieldOrder,
		oneofOrder:  oneofOrder,
		nestedOrder: nestedOrder,
		optOrder:    optOrder,
	}
}

// ToJSON converts a service with its methods in declaration order.
func (s *Service) ToJSON() *ObjectJSON {
	if s.hidden() {
		return nil
	}

	methods := make(map[string]*ObjectJSON, len(s.methodOrder))
	methodOrder := make([]string, 0, len(s.methodOrder))
	s.EachMethod(func(m *Method) {
		if j := m.ToJSON(); j != nil {
			methods[m.Name()] = j
			methodOrder = append(methodOrder, m.Name())
		}
	})

	nested, nestedOrder := s.nestedJSON()
	opts, optOrder := s.jsonOptions()

	return &ObjectJSON{
		Methods:     methods,
		Nested:      nested,
		Options:     opts,
		methodOrder: methodOrder,
		nestedOrder: nestedOrder,
		optOrder:    optOrder,
	}
}

// ToJSON converts a method declaration.
func (m *Method) ToJSON() *ObjectJSON {
	if m.hidden() {
		return nil
	}

	opts, optOrder := m.jsonOptions()

	return &ObjectJSON{
		RequestType:  m.requestType,
		ResponseType: m.responseType,
		Options:      opts,
		optOrder:     optOrder,
	}
}

// ToJSON converts the root. Unlike a plain namespace, the root always
// yields an object so an empty schema exports as {}.
func (r *Root) ToJSON() *ObjectJSON {
	j := r.Namespace.ToJSON()
	if j == nil {
		j = &ObjectJSON{}
	}

	return j
}

// MarshalJSON serializes the DTO with the jsoniter stream API so sibling
// entries keep their recorded declaration order; Go maps alone would
// randomize it.
func (o *ObjectJSON) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	o.writeTo(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}

func (o *ObjectJSON) writeTo(stream *jsoniter.Stream) {
	first := true
	field := func(name string) {
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteObjectField(name)
	}

	stream.WriteObjectStart()

	if len(o.Options) > 0 {
		field("options")
		writeAnyMap(stream, o.Options, o.optOrder)
	}
	if o.ID != nil {
		field("id")
		stream.WriteInt32(*o.ID)
	}
	if o.Type != "" {
		field("type")
		stream.WriteString(o.Type)
	}
	if o.Rule != "" {
		field("rule")
		stream.WriteString(o.Rule)
	}
	if o.Extend != "" {
		field("extend")
		stream.WriteString(o.Extend)
	}
	if o.KeyType != "" {
		field("keyType")
		stream.WriteString(o.KeyType)
	}
	if o.Values != nil {
		field("values")
		writeValueMap(stream, o.Values, o.valueOrder)
	}
	if o.Fields != nil {
		field("fields")
		writeObjectMap(stream, o.Fields, o.fieldOrder)
	}
	if len(o.Oneofs) > 0 {
		field("oneofs")
		writeOneofMap(stream, o.Oneofs, o.oneofOrder)
	}
	if o.Methods != nil {
		field("methods")
		writeObjectMap(stream, o.Methods, o.methodOrder)
	}
	if o.RequestType != "" {
		field("requestType")
		stream.WriteString(o.RequestType)
	}
	if o.ResponseType != "" {
		field("responseType")
		stream.WriteString(o.ResponseType)
	}
	if len(o.Nested) > 0 {
		field("nested")
		writeObjectMap(stream, o.Nested, o.nestedOrder)
	}

	stream.WriteObjectEnd()
}

// keyOrder returns the recorded order when it covers the map, otherwise
// sorted keys.
func keyOrder[V any](m map[string]V, recorded []string) []string {
	if len(recorded) == len(m) {
		return recorded
	}

	return sortedKeys(m)
}

func writeObjectMap(stream *jsoniter.Stream, m map[string]*ObjectJSON, order []string) {
	stream.WriteObjectStart()
	for i, name := range keyOrder(m, order) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		m[name].writeTo(stream)
	}
	stream.WriteObjectEnd()
}

func writeOneofMap(stream *jsoniter.Stream, m map[string]*OneOfJSON, order []string) {
	stream.WriteObjectStart()
	for i, name := range keyOrder(m, order) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		stream.WriteVal(m[name])
	}
	stream.WriteObjectEnd()
}

func writeValueMap(stream *jsoniter.Stream, m map[string]int32, order []string) {
	stream.WriteObjectStart()
	for i, name := range keyOrder(m, order) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		stream.WriteInt32(m[name])
	}
	stream.WriteObjectEnd()
}

func writeAnyMap(stream *jsoniter.Stream, m map[string]any, order []string) {
	stream.WriteObjectStart()
	for i, name := range keyOrder(m, order) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		stream.WriteVal(m[name])
	}
	stream.WriteObjectEnd()
}
