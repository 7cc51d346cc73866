package jira

import (
	"time"

	"github.com/stonefield/jiraSOAP/core/entity"
)

// Priority, Status and Resolution carry nothing beyond IssueProperty.
type (
	Priority   struct{ IssueProperty }
	Status     struct{ IssueProperty }
	Resolution struct{ IssueProperty }
)

// IssueType is an issue property that may denote a sub-task type.
type IssueType struct {
	IssueProperty
	SubTask *bool
}

// Filter is a saved search.
type Filter struct {
	DescribedEntity
	Author  *string
	Project *string
	XML     *string
}

// Comment is a comment on an issue.
type Comment struct {
	Entity
	Author       *string
	Body         *string
	GroupLevel   *string
	RoleLevel    *string
	Created      *time.Time
	Updated      *time.Time
	UpdateAuthor *string
}

func issueProperty[T any](name string, get func(*T) *IssueProperty, fields ...entity.Field[T]) *entity.Schema[T] {
	return entity.Derive(name, IssuePropertySchema, get, fields...)
}

var (
	PrioritySchema   = issueProperty("priority", func(p *Priority) *IssueProperty { return &p.IssueProperty })
	StatusSchema     = issueProperty("status", func(s *Status) *IssueProperty { return &s.IssueProperty })
	ResolutionSchema = issueProperty("resolution", func(r *Resolution) *IssueProperty { return &r.IssueProperty })

	IssueTypeSchema = issueProperty("issueType",
		func(t *IssueType) *IssueProperty { return &t.IssueProperty },
		entity.Bool("subTask", func(t *IssueType) **bool { return &t.SubTask }),
	)
)

var FilterSchema = entity.Derive("filter", DescribedEntitySchema,
	func(f *Filter) *DescribedEntity { return &f.DescribedEntity },
	entity.String("author", func(f *Filter) **string { return &f.Author }),
	entity.String("project", func(f *Filter) **string { return &f.Project }),
	entity.String("xml", func(f *Filter) **string { return &f.XML }),
)

var CommentSchema = entity.Derive("comment", EntitySchema,
	func(c *Comment) *Entity { return &c.Entity },
	entity.String("author", func(c *Comment) **string { return &c.Author }),
	entity.String("body", func(c *Comment) **string { return &c.Body }),
	entity.String("groupLevel", func(c *Comment) **string { return &c.GroupLevel }),
	entity.String("roleLevel", func(c *Comment) **string { return &c.RoleLevel }),
	entity.DateTime("created", func(c *Comment) **time.Time { return &c.Created }),
	entity.DateTime("updated", func(c *Comment) **time.Time { return &c.Updated }),
	entity.String("updateAuthor", func(c *Comment) **string { return &c.UpdateAuthor }),
)
