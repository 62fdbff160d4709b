package desc

import (
	"fmt"

	"github.com/arloliu/protowire/errs"
)

// Enum is a named set of (symbol, number) pairs. It nests under a
// namespace or message but holds no nested objects of its own.
type Enum struct {
	object

	valuesByName map[string]int32
	namesByValue map[int32]string
	order        []string
}

var _ Object = (*Enum)(nil)

// NewEnum creates a detached enum.
func NewEnum(name string) *Enum {
	return &Enum{
		object:       object{name: name},
		valuesByName: make(map[string]int32),
		namesByValue: make(map[int32]string),
	}
}

// AddValue adds a (symbol, number) pair. Duplicate symbols are an error;
// aliased numbers keep the first symbol for reverse lookup.
func (e *Enum) AddValue(name string, number int32) error {
	if _, exists := e.valuesByName[name]; exists {
		return fmt.Errorf("%w: enum value %s in %s", errs.ErrDuplicateName, name, FullName(e))
	}

	e.valuesByName[name] = number
	if _, exists := e.namesByValue[number]; !exists {
		e.namesByValue[number] = name
	}
	e.order = append(e.order, name)

	return nil
}

// ValueByName returns the number for a symbol.
func (e *Enum) ValueByName(name string) (int32, bool) {
	n, ok := e.valuesByName[name]
	return n, ok
}

// NameByValue returns the first symbol declared for a number.
func (e *Enum) NameByValue(number int32) (string, bool) {
	name, ok := e.namesByValue[number]
	return name, ok
}

// Each calls fn for every value in declaration order.
func (e *Enum) Each(fn func(name string, number int32)) {
	for _, name := range e.order {
		fn(name, e.valuesByName[name])
	}
}

// Len returns the number of declared values.
func (e *Enum) Len() int {
	return len(e.order)
}

// Number coerces an enum value: a symbolic name is looked up, anything
// else must coerce to an integer.
func (e *Enum) Number(v any) (int32, error) {
	if s, ok := v.(string); ok {
		if n, found := e.valuesByName[s]; found {
			return n, nil
		}

		return 0, fmt.Errorf("%w: %q in %s", errs.ErrInvalidEnumValue, s, FullName(e))
	}

	i, err := asInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v in %s", errs.ErrInvalidEnumValue, v, FullName(e))
	}

	return int32(i), nil
}
