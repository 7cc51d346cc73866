// Package jira declares the entities exchanged with the JIRA SOAP service and
// their wire schemas. Every attribute is a pointer or slice so a field the
// server did not send stays nil.
package jira

import (
	"net/url"

	"github.com/stonefield/jiraSOAP/core/entity"
)

// Entity is anything the server identifies by id.
type Entity struct {
	ID *string
}

// NamedEntity adds a display name.
type NamedEntity struct {
	Entity
	Name *string
}

// DescribedEntity adds a free-text description.
type DescribedEntity struct {
	NamedEntity
	Description *string
}

// IssueProperty is the common shape of priorities, statuses, issue types
// and resolutions.
type IssueProperty struct {
	DescribedEntity
	Icon  *url.URL
	Color *string
}

var (
	EntitySchema = entity.New("entity",
		entity.String("id", func(e *Entity) **string { return &e.ID }),
	)

	NamedEntitySchema = entity.Derive("namedEntity", EntitySchema,
		func(n *NamedEntity) *Entity { return &n.Entity },
		entity.String("name", func(n *NamedEntity) **string { return &n.Name }),
	)

	DescribedEntitySchema = entity.Derive("describedEntity", NamedEntitySchema,
		func(d *DescribedEntity) *NamedEntity { return &d.NamedEntity },
		entity.String("description", func(d *DescribedEntity) **string { return &d.Description }),
	)

	IssuePropertySchema = entity.Derive("issueProperty", DescribedEntitySchema,
		func(p *IssueProperty) *DescribedEntity { return &p.DescribedEntity },
		entity.URL("icon", func(p *IssueProperty) **url.URL { return &p.Icon }),
		entity.String("color", func(p *IssueProperty) **string { return &p.Color }),
	)
)

// Value returns *p, or the zero value when p is nil.
func Value[V any](p *V) V {
	if p == nil {
		var zero V
		return zero
	}
	return *p
}

// Ptr returns a pointer to v, for filling outbound entities.
func Ptr[V any](v V) *V {
	return &v
}
