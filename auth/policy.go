package auth

import (
	"slices"

	"taskboard/models"
)

// Operation names a protected API action.
type Operation string

const (
	OpProfile        Operation = "auth.profile"
	OpChangePassword Operation = "auth.password"
	OpProjectCreate  Operation = "project.create"
	OpProjectList    Operation = "project.list"
	OpProjectGet     Operation = "project.get"
	OpProjectDelete  Operation = "project.delete"
	OpProjectHistory Operation = "project.activity"
	OpTaskCreate     Operation = "task.create"
	OpTaskList       Operation = "task.list"
	OpTaskGet        Operation = "task.get"
	OpTaskStatus     Operation = "task.status"
	OpTaskPriority   Operation = "task.priority"
	OpTaskDueDate    Operation = "task.due-date"
	OpTaskAssign     Operation = "task.assign"
	OpUserList       Operation = "user.list"
	OpUserGet        Operation = "user.get"
)

var managerOnly = []models.Role{models.RoleManager}

// Requirements maps every protected operation to the roles allowed to run it.
// An empty list means any authenticated identity.
var Requirements = map[Operation][]models.Role{
	OpProfile:        nil,
	OpChangePassword: nil,
	OpProjectCreate:  managerOnly,
	OpProjectList:    nil,
	OpProjectGet:     nil,
	OpProjectDelete:  managerOnly,
	OpProjectHistory: nil,
	OpTaskCreate:     nil,
	OpTaskList:       nil,
	OpTaskGet:        nil,
	OpTaskStatus:     managerOnly,
	OpTaskPriority:   managerOnly,
	OpTaskDueDate:    managerOnly,
	OpTaskAssign:     managerOnly,
	OpUserList:       nil,
	OpUserGet:        nil,
}

// Authorize fails closed: an operation missing from the table is forbidden.
func Authorize(role models.Role, op Operation) error {
	required, ok := Requirements[op]
	if !ok {
		return models.Forbiddenf("Forbidden resource")
	}
	if len(required) == 0 || slices.Contains(required, role) {
		return nil
	}
	return models.Forbiddenf("Forbidden resource")
}
