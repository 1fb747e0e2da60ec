package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableUsers        = "users"
	tableProgress     = "progress"
	tableBadgeAwards  = "badge_awards"
	tableLessonEvents = "lesson_events"

	colID          = "id"
	colUserID      = "user_id"
	colDisplayName = "display_name"
	colCreatedAt   = "created_at"
	colLessonID    = "lesson_id"
	colCompleted   = "completed"
	colScore       = "score"
	colDate        = "completed_at"
	colName        = "name"
	colImage       = "image"
	colDescription = "description"
	colEarnedAt    = "earned_at"
	colSequence    = "sequence"
	colTimestamp   = "timestamp"
	colSessionID   = "session_id"
	colAction      = "action"
	colDetail      = "detail"
)

var (
	usersColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString},
		{Name: colDisplayName, Type: field.TypeString},
		{Name: colCreatedAt, Type: field.TypeTime},
	}
	usersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	progressColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colUserID, Type: field.TypeString},
		{Name: colLessonID, Type: field.TypeString},
		{Name: colCompleted, Type: field.TypeBool, Default: false},
		{Name: colScore, Type: field.TypeInt, Default: 0},
		{Name: colDate, Type: field.TypeTime},
	}
	progressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progress_user_id_lesson_id", Unique: true, Columns: []*schema.Column{progressColumns[1], progressColumns[2]}},
		},
	}

	badgeAwardsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colUserID, Type: field.TypeString},
		{Name: colName, Type: field.TypeString},
		{Name: colImage, Type: field.TypeString, Default: ""},
		{Name: colDescription, Type: field.TypeString, Default: ""},
		{Name: colEarnedAt, Type: field.TypeTime},
	}
	badgeAwardsTable = &schema.Table{
		Name:       tableBadgeAwards,
		Columns:    badgeAwardsColumns,
		PrimaryKey: []*schema.Column{badgeAwardsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "badge_awards_user_id_name", Unique: true, Columns: []*schema.Column{badgeAwardsColumns[1], badgeAwardsColumns[2]}},
		},
	}

	lessonEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colUserID, Type: field.TypeString},
		{Name: colSessionID, Type: field.TypeString},
		{Name: colLessonID, Type: field.TypeString},
		{Name: colAction, Type: field.TypeString},
		{Name: colDetail, Type: field.TypeString, Default: ""},
	}
	lessonEventsTable = &schema.Table{
		Name:       tableLessonEvents,
		Columns:    lessonEventsColumns,
		PrimaryKey: []*schema.Column{lessonEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lesson_events_user_id", Columns: []*schema.Column{lessonEventsColumns[3]}},
		},
	}

	// Tables lists every table managed by auto-migration.
	Tables = []*schema.Table{
		usersTable,
		progressTable,
		badgeAwardsTable,
		lessonEventsTable,
	}
)
