/*
Package entity maps wire XML fragments to typed Go values and back.

An entity is any struct type that owns a *Schema. A schema is an ordered table of
field descriptors, each pairing a wire name (the tag the remote service uses) with
an accessor bound at compile time and a converter:

	type ServerInfo struct {
		BaseURL   *url.URL
		BuildDate *time.Time
		Version   *string
	}

	var ServerInfoSchema = entity.New("ServerInfo",
		entity.URL("baseUrl", func(s *ServerInfo) **url.URL { return &s.BaseURL }),
		entity.Date("buildDate", func(s *ServerInfo) **time.Time { return &s.BuildDate }),
		entity.String("version", func(s *ServerInfo) **string { return &s.Version }),
	)

Attributes are pointers (or slices) so that "not present" stays distinguishable
from "empty" in both directions.

# Composition

Types sharing a base declare the base schema once and lift it onto the embedding
type. The base table is copied, never shared, so a subtype may redeclare an
inherited wire name without affecting its siblings:

	var NamedSchema = entity.New("Named",
		entity.String("id", func(n *Named) **string { return &n.ID }),
		entity.String("name", func(n *Named) **string { return &n.Name }),
	)

	var ProjectSchema = entity.Derive("Project", NamedSchema,
		func(p *Project) *Named { return &p.Named },
		entity.String("key", func(p *Project) **string { return &p.Key }),
	)

# Converters

Scalar fields use a Converter: String, Bool, Int, Date, DateTime and URL are
provided. Structural fields use Nested (one child entity), ArrayOf (every child
element becomes one entity) and Strings (every child element's text).

Bool fields also register a read-only predicate, available through
Schema.Predicate and Schema.Is.

# Materializing

	info, err := entity.Materialize(ServerInfoSchema, node)

Every child element of node is looked up by tag. Unknown tags are skipped.
Elements marked xsi:nil="true" leave the attribute absent. Conversion failures
surface as *ConversionError and shape mismatches as *MaterializationError.

# Serializing

	entity.Serialize(VersionSchema, v, slot)

appends one child per present attribute, in declaration order. Record produces
the same walk as a wire-keyed map for display.
*/
package entity
