package jira

import (
	"net/url"
	"time"

	"github.com/stonefield/jiraSOAP/core/entity"
)

// Scheme is a notification, permission or issue security scheme.
type Scheme struct {
	DescribedEntity
	Type *string
}

// PermissionScheme is a scheme whose members are permission grants.
type PermissionScheme struct {
	Scheme
}

// Project is a JIRA project. URL is the project's own homepage; JiraURL is
// its page on the server.
type Project struct {
	DescribedEntity
	Key                 *string
	Lead                *string
	URL                 *url.URL
	JiraURL             *url.URL
	IssueSecurityScheme *Scheme
	NotificationScheme  *Scheme
	PermissionScheme    *PermissionScheme
}

// Version is a release of a project.
type Version struct {
	NamedEntity
	Sequence    *int64
	Released    *bool
	Archived    *bool
	ReleaseDate *time.Time
}

// Component is a project component.
type Component struct {
	NamedEntity
}

// Avatar is a project or user picture. Data is base64 encoded.
type Avatar struct {
	Entity
	Owner       *string
	Type        *string
	ContentType *string
	Data        *string
	System      *bool
}

var SchemeSchema = entity.Derive("scheme", DescribedEntitySchema,
	func(s *Scheme) *DescribedEntity { return &s.DescribedEntity },
	entity.String("type", func(s *Scheme) **string { return &s.Type }),
)

var PermissionSchemeSchema = entity.Derive("permissionScheme", SchemeSchema,
	func(p *PermissionScheme) *Scheme { return &p.Scheme },
)

var ProjectSchema = entity.Derive("project", DescribedEntitySchema,
	func(p *Project) *DescribedEntity { return &p.DescribedEntity },
	entity.String("key", func(p *Project) **string { return &p.Key }),
	entity.String("lead", func(p *Project) **string { return &p.Lead }),
	entity.URL("projectUrl", func(p *Project) **url.URL { return &p.URL }),
	entity.URL("url", func(p *Project) **url.URL { return &p.JiraURL }),
	entity.Nested("issueSecurityScheme", func(p *Project) **Scheme { return &p.IssueSecurityScheme }, SchemeSchema),
	entity.Nested("notificationScheme", func(p *Project) **Scheme { return &p.NotificationScheme }, SchemeSchema),
	entity.Nested("permissionScheme", func(p *Project) **PermissionScheme { return &p.PermissionScheme }, PermissionSchemeSchema),
)

var VersionSchema = entity.Derive("version", NamedEntitySchema,
	func(v *Version) *NamedEntity { return &v.NamedEntity },
	entity.Int("sequence", func(v *Version) **int64 { return &v.Sequence }),
	entity.Bool("released", func(v *Version) **bool { return &v.Released }),
	entity.Bool("archived", func(v *Version) **bool { return &v.Archived }),
	entity.Date("releaseDate", func(v *Version) **time.Time { return &v.ReleaseDate }),
)

var ComponentSchema = entity.Derive("component", NamedEntitySchema,
	func(c *Component) *NamedEntity { return &c.NamedEntity },
)

var AvatarSchema = entity.Derive("avatar", EntitySchema,
	func(a *Avatar) *Entity { return &a.Entity },
	entity.String("owner", func(a *Avatar) **string { return &a.Owner }),
	entity.String("type", func(a *Avatar) **string { return &a.Type }),
	entity.String("contentType", func(a *Avatar) **string { return &a.ContentType }),
	entity.String("base64Data", func(a *Avatar) **string { return &a.Data }),
	entity.Bool("system", func(a *Avatar) **bool { return &a.System }),
)
