package flowchart

import (
	"errors"
	"fmt"
)

// Constructor rebuilds one entity type from its record. It returns an error
// wrapping errWrongType when the record belongs to another type.
type Constructor func(s string) (Entity, error)

// Kind describes one registered entity type.
type Kind struct {
	Type string
	// New returns a blank entity of this type.
	New func() Entity
	// FromString decodes a record of this type.
	FromString Constructor
}

// Factory maps records back to entities by probing each registered kind in
// order.
type Factory struct {
	kinds []Kind
}

// NewFactory returns a factory that knows every flowchart entity.
func NewFactory() *Factory {
	f := &Factory{}
	f.Register(Kind{TypeTerminator, func() Entity { return NewTerminator() }, wrap(TerminatorFromString)})
	f.Register(Kind{TypeBox, func() Entity { return NewBox() }, wrap(BoxFromString)})
	f.Register(Kind{TypeCondition, func() Entity { return NewCondition() }, wrap(ConditionFromString)})
	f.Register(Kind{TypeConnector, func() Entity { return NewConnector() }, wrap(ConnectorFromString)})
	f.Register(Kind{TypeIO, func() Entity { return NewIO() }, wrap(IOFromString)})
	f.Register(Kind{TypeLabel, func() Entity { return NewLabel() }, wrap(LabelFromString)})
	f.Register(Kind{TypeLine, func() Entity { return NewLineSegment() }, wrap(LineSegmentFromString)})
	f.Register(Kind{TypeLinkableLine, func() Entity { return NewLinkableLineSegment() }, wrap(LinkableLineSegmentFromString)})
	return f
}

func wrap[T Entity](fn func(string) (T, error)) Constructor {
	return func(s string) (Entity, error) {
		e, err := fn(s)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Register appends a kind to the probe order.
func (f *Factory) Register(k Kind) {
	f.kinds = append(f.kinds, k)
}

// Kinds returns the registered kinds in probe order.
func (f *Factory) Kinds() []Kind {
	return append([]Kind(nil), f.kinds...)
}

// New returns a blank entity of the given type.
func (f *Factory) New(typ string) (Entity, error) {
	for _, k := range f.kinds {
		if k.Type == typ {
			return k.New(), nil
		}
	}
	return nil, fmt.Errorf("%w: type %q", ErrUnrecognized, typ)
}

// CreateFromString probes each kind until one accepts the record. A record
// that no kind claims yields ErrUnrecognized; one whose kind rejects its
// fields yields ErrCorrupt.
func (f *Factory) CreateFromString(s string) (Entity, error) {
	for _, k := range f.kinds {
		e, err := k.FromString(s)
		if err == nil {
			return e, nil
		}
		if errors.Is(err, errWrongType) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: type %q", ErrUnrecognized, recordType(s))
}
