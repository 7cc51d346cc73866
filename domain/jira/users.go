package jira

import "github.com/stonefield/jiraSOAP/core/entity"

// User is a JIRA account. Name is the login name.
type User struct {
	Name     *string
	FullName *string
	Email    *string
}

// Group is a named set of users.
type Group struct {
	Name  *string
	Users []*User
}

// ProjectRole is a role that users and groups can hold within a project.
type ProjectRole struct {
	DescribedEntity
}

var UserSchema = entity.New("user",
	entity.String("name", func(u *User) **string { return &u.Name }),
	entity.String("fullname", func(u *User) **string { return &u.FullName }),
	entity.String("email", func(u *User) **string { return &u.Email }),
)

var GroupSchema = entity.New("group",
	entity.String("name", func(g *Group) **string { return &g.Name }),
	entity.ArrayOf("users", func(g *Group) *[]*User { return &g.Users }, UserSchema),
)

var ProjectRoleSchema = entity.Derive("projectRole", DescribedEntitySchema,
	func(r *ProjectRole) *DescribedEntity { return &r.DescribedEntity },
)
