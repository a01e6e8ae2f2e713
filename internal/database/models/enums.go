package models

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether the status is one of the enumerated values
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// BugSeverity represents the severity of a bug
type BugSeverity string

const (
	BugSeverityLow      BugSeverity = "LOW"
	BugSeverityMedium   BugSeverity = "MEDIUM"
	BugSeverityCritical BugSeverity = "CRITICAL"
)

func (s BugSeverity) Valid() bool {
	switch s {
	case BugSeverityLow, BugSeverityMedium, BugSeverityCritical:
		return true
	}
	return false
}

// BugStatus is a two-value toggle with no side-effected fields
type BugStatus string

const (
	BugStatusOpen  BugStatus = "OPEN"
	BugStatusFixed BugStatus = "FIXED"
)

func (s BugStatus) Valid() bool {
	switch s {
	case BugStatusOpen, BugStatusFixed:
		return true
	}
	return false
}

// UserRole determines authorization for team-membership mutations only;
// it has no bearing on task or bug CRUD.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleMember:
		return true
	}
	return false
}
