package entity

// Schema is the ordered field table of entity type T.
type Schema[T any] struct {
	name   string
	fields []Field[T]
	index  map[string]int
}

// New declares a root schema. A wire name declared twice keeps its first
// position and the later descriptor.
func New[T any](name string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		name:  name,
		index: make(map[string]int, len(fields)),
	}
	s.add(fields)
	return s
}

// Extend returns a copy of s under a new name with fields added on top.
// s itself is left untouched.
func (s *Schema[T]) Extend(name string, fields ...Field[T]) *Schema[T] {
	out := &Schema[T]{
		name:   name,
		fields: make([]Field[T], len(s.fields), len(s.fields)+len(fields)),
		index:  make(map[string]int, len(s.fields)+len(fields)),
	}
	copy(out.fields, s.fields)
	for wire, i := range s.index {
		out.index[wire] = i
	}
	out.add(fields)
	return out
}

// Embed lifts every field of base onto T, which reaches its B through get.
func Embed[T, B any](base *Schema[B], get func(*T) *B) []Field[T] {
	out := make([]Field[T], len(base.fields))
	for i, f := range base.fields {
		out[i] = lift(f, get)
	}
	return out
}

// Derive declares the schema of a type embedding B: the lifted base fields
// followed by T's own declarations.
func Derive[T, B any](name string, base *Schema[B], get func(*T) *B, fields ...Field[T]) *Schema[T] {
	return New(name, append(Embed(base, get), fields...)...)
}

func (s *Schema[T]) add(fields []Field[T]) {
	for _, f := range fields {
		if i, ok := s.index[f.wire]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.wire] = len(s.fields)
		s.fields = append(s.fields, f)
	}
}

// Name returns the entity name the schema was declared with.
func (s *Schema[T]) Name() string {
	return s.name
}

// Len returns the number of declared fields.
func (s *Schema[T]) Len() int {
	return len(s.fields)
}

// Lookup finds a field by exact wire name.
func (s *Schema[T]) Lookup(wire string) (Field[T], bool) {
	i, ok := s.index[wire]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Fields returns the fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// WireNames returns the wire names in declaration order.
func (s *Schema[T]) WireNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.wire
	}
	return out
}

// Predicate returns the read-only accessor registered for a Bool field.
func (s *Schema[T]) Predicate(wire string) (func(*T) bool, bool) {
	f, ok := s.Lookup(wire)
	if !ok || f.predicate == nil {
		return nil, false
	}
	return f.predicate, true
}

// Is evaluates the predicate for wire on e. Absent values and non-boolean
// fields report false.
func (s *Schema[T]) Is(e *T, wire string) bool {
	p, ok := s.Predicate(wire)
	if !ok || e == nil {
		return false
	}
	return p(e)
}
