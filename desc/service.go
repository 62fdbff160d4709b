package desc

import (
	"fmt"

	"github.com/arloliu/protowire/errs"
)

// Service is a namespace extended with an ordered method map. It exists
// so schemas carrying RPC definitions round-trip through reflection and
// JSON; protowire performs no RPC plumbing.
type Service struct {
	Namespace

	methods     map[string]*Method
	methodOrder []string
}

var _ container = (*Service)(nil)

// NewService creates a detached service.
func NewService(name string) *Service {
	s := &Service{
		Namespace: Namespace{object: object{name: name}},
	}
	s.self = s

	return s
}

// Add nests an object; methods join the method map, everything else goes
// through the namespace rules.
func (s *Service) Add(obj Object) error {
	if m, ok := obj.(*Method); ok {
		return s.AddMethod(m)
	}

	return s.Namespace.Add(obj)
}

// AddMethod adds a method to the service.
func (s *Service) AddMethod(m *Method) error {
	if _, exists := s.methods[m.name]; exists {
		return fmt.Errorf("%w: method %s in %s", errs.ErrDuplicateName, m.name, FullName(s))
	}

	if s.methods == nil {
		s.methods = make(map[string]*Method)
	}
	s.methods[m.name] = m
	s.methodOrder = append(s.methodOrder, m.name)
	m.onAdd(s)

	return nil
}

// Method returns the named method, or nil.
func (s *Service) Method(name string) *Method {
	if s.methods == nil {
		return nil
	}

	return s.methods[name]
}

// EachMethod calls fn for every method in declaration order.
func (s *Service) EachMethod(fn func(*Method)) {
	for _, name := range s.methodOrder {
		fn(s.methods[name])
	}
}

// ResolveAll resolves methods, nested objects and the service itself.
func (s *Service) ResolveAll() error {
	for _, name := range s.methodOrder {
		if err := s.methods[name].Resolve(); err != nil {
			return err
		}
	}

	return s.Namespace.ResolveAll()
}

var _ Object = (*Method)(nil)

// Method is one RPC method of a Service, binding request and response
// message types by symbolic reference.
type Method struct {
	object

	requestType  string
	responseType string

	resolvedRequest  *Message
	resolvedResponse *Message
}

// NewMethod creates a method referencing its request and response types.
func NewMethod(name, requestType, responseType string) (*Method, error) {
	if requestType == "" || responseType == "" {
		return nil, fmt.Errorf("%w: method %s needs request and response types", errs.ErrInvalidFieldType, name)
	}

	return &Method{
		object:       object{name: name},
		requestType:  requestType,
		responseType: responseType,
	}, nil
}

// RequestType returns the symbolic request type reference.
func (m *Method) RequestType() string {
	return m.requestType
}

// ResponseType returns the symbolic response type reference.
func (m *Method) ResponseType() string {
	return m.responseType
}

// ResolvedRequest returns the bound request message after resolution.
func (m *Method) ResolvedRequest() *Message {
	return m.resolvedRequest
}

// ResolvedResponse returns the bound response message after resolution.
func (m *Method) ResolvedResponse() *Message {
	return m.resolvedResponse
}

// Resolve binds both type references; each must name a message type.
func (m *Method) Resolve() error {
	if m.resolved {
		return nil
	}
	parent, ok := m.parent.(container)
	if !ok {
		return fmt.Errorf("%w: method %s is detached", errs.ErrUnresolvableType, m.name)
	}

	req, ok := parent.ns().Lookup(m.requestType).(*Message)
	if !ok {
		return fmt.Errorf("%w: request type %s of %s", errs.ErrUnresolvableType, m.requestType, FullName(m))
	}
	resp, ok := parent.ns().Lookup(m.responseType).(*Message)
	if !ok {
		return fmt.Errorf("%w: response type %s of %s", errs.ErrUnresolvableType, m.responseType, FullName(m))
	}

	m.resolvedRequest = req
	m.resolvedResponse = resp

	return m.object.Resolve()
}
