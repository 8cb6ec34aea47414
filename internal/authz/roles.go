package authz

const (
	RoleSales      = 10
	RoleProduction = 20
	RoleAudit      = 30
	RoleManagement = 40
	RoleAdmin      = 50
)

// ConfigRoles may edit workflow configuration: statuses, dependencies,
// kanban columns and pipelines.
var ConfigRoles = []int{RoleManagement, RoleAdmin}

// JobRoles may move jobs between statuses and edit job money fields.
var JobRoles = []int{RoleProduction, RoleManagement, RoleAdmin}

func IsElevated(roleID int) bool {
	return roleID == RoleManagement || roleID == RoleAdmin
}

func IsReadOnly(roleID int) bool {
	return roleID == RoleAudit
}
