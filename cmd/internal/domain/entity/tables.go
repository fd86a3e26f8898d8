package entity

const (
	TableUsers         = "users"
	TableTeamMembers   = "team_members"
	TableProjects      = "projects"
	TableEvents        = "events"
	TableAnnouncements = "announcements"
	TableActivityLog   = "activity_log"
)

// Models returns a zero value of every persisted entity keyed by table name.
func Models() map[string]any {
	return map[string]any{
		TableUsers:         &User{},
		TableTeamMembers:   &TeamMember{},
		TableProjects:      &Project{},
		TableEvents:        &Event{},
		TableAnnouncements: &Announcement{},
		TableActivityLog:   &ActivityLog{},
	}
}
