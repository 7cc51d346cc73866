package jira

import (
	"net/url"
	"time"

	"github.com/stonefield/jiraSOAP/core/entity"
)

// TimeInfo is the server clock as reported inside ServerInfo.
type TimeInfo struct {
	ServerTime *time.Time
	TimeZoneID *string
}

// ServerInfo describes the JIRA installation. BuildDate carries no time of day.
type ServerInfo struct {
	BaseURL     *url.URL
	BuildDate   *time.Time
	BuildNumber *int64
	Edition     *string
	Version     *string
	ServerTime  *TimeInfo
}

// ServerConfiguration lists which optional features are switched on.
type ServerConfiguration struct {
	AllowAttachments           *bool
	AllowExternalUserManagment *bool
	AllowIssueLinking          *bool
	AllowSubTasks              *bool
	AllowTimeTracking          *bool
	AllowUnassignedIssues      *bool
	AllowVoting                *bool
	AllowWatching              *bool
	TimeTrackingDaysPerWeek    *int64
	TimeTrackingHoursPerDay    *int64
}

var TimeInfoSchema = entity.New("timeInfo",
	entity.DateTime("serverTime", func(t *TimeInfo) **time.Time { return &t.ServerTime }),
	entity.String("timeZoneId", func(t *TimeInfo) **string { return &t.TimeZoneID }),
)

var ServerInfoSchema = entity.New("serverInfo",
	entity.URL("baseUrl", func(s *ServerInfo) **url.URL { return &s.BaseURL }),
	entity.Date("buildDate", func(s *ServerInfo) **time.Time { return &s.BuildDate }),
	entity.Int("buildNumber", func(s *ServerInfo) **int64 { return &s.BuildNumber }),
	entity.String("edition", func(s *ServerInfo) **string { return &s.Edition }),
	entity.String("version", func(s *ServerInfo) **string { return &s.Version }),
	entity.Nested("serverTime", func(s *ServerInfo) **TimeInfo { return &s.ServerTime }, TimeInfoSchema),
)

// The misspelled wire name is the server's.
var ServerConfigurationSchema = entity.New("serverConfiguration",
	entity.Bool("allowAttachments", func(c *ServerConfiguration) **bool { return &c.AllowAttachments }),
	entity.Bool("allowExternalUserManagment", func(c *ServerConfiguration) **bool { return &c.AllowExternalUserManagment }),
	entity.Bool("allowIssueLinking", func(c *ServerConfiguration) **bool { return &c.AllowIssueLinking }),
	entity.Bool("allowSubTasks", func(c *ServerConfiguration) **bool { return &c.AllowSubTasks }),
	entity.Bool("allowTimeTracking", func(c *ServerConfiguration) **bool { return &c.AllowTimeTracking }),
	entity.Bool("allowUnassignedIssues", func(c *ServerConfiguration) **bool { return &c.AllowUnassignedIssues }),
	entity.Bool("allowVoting", func(c *ServerConfiguration) **bool { return &c.AllowVoting }),
	entity.Bool("allowWatching", func(c *ServerConfiguration) **bool { return &c.AllowWatching }),
	entity.Int("timeTrackingDaysPerWeek", func(c *ServerConfiguration) **int64 { return &c.TimeTrackingDaysPerWeek }),
	entity.Int("timeTrackingHoursPerDay", func(c *ServerConfiguration) **int64 { return &c.TimeTrackingHoursPerDay }),
)

// Features returns the names of the switched-on allow* flags, in wire order.
func (c *ServerConfiguration) Features() []string {
	var out []string
	for _, f := range ServerConfigurationSchema.Fields() {
		if f.Kind() == entity.KindBool && ServerConfigurationSchema.Is(c, f.Wire()) {
			out = append(out, f.Wire())
		}
	}
	return out
}
