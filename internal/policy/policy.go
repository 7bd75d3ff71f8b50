// Package policy maps roles to permitted operations. The check is a pure
// function evaluated before any mutation; handlers wire it in as middleware.
package policy

import "github.com/google/uuid"

// Actor is the authenticated identity performing a request. It is passed
// explicitly into every operation that needs it; there is no ambient session.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Operation identifies a protected operation.
type Operation string

const (
	OpProductCreate Operation = "product.create"
	OpProductUpdate Operation = "product.update"
	OpProductDelete Operation = "product.delete"
	OpStockAdjust   Operation = "product.stock.adjust"

	OpCategoryCreate Operation = "category.create"
	OpCategoryUpdate Operation = "category.update"
	OpCategoryDelete Operation = "category.delete"

	OpOrderPlace        Operation = "order.place"
	OpOrderList         Operation = "order.list"
	OpOrderStatusUpdate Operation = "order.status.update"

	OpPOSSale   Operation = "pos.sale"
	OpPOSList   Operation = "pos.list"
	OpPOSRefund Operation = "pos.refund"

	OpUserList       Operation = "user.list"
	OpUserRoleUpdate Operation = "user.role.update"

	OpStatsView Operation = "stats.view"
)

var (
	staffOrAdmin = []Role{RoleAdmin, RoleStaff}
	adminOnly    = []Role{RoleAdmin}
)

var permissions = map[Operation][]Role{
	OpProductCreate: staffOrAdmin,
	OpProductUpdate: staffOrAdmin,
	OpProductDelete: adminOnly,
	OpStockAdjust:   staffOrAdmin,

	OpCategoryCreate: staffOrAdmin,
	OpCategoryUpdate: staffOrAdmin,
	OpCategoryDelete: adminOnly,

	OpOrderPlace:        staffOrAdmin,
	OpOrderList:         staffOrAdmin,
	OpOrderStatusUpdate: staffOrAdmin,

	OpPOSSale:   staffOrAdmin,
	OpPOSList:   staffOrAdmin,
	OpPOSRefund: staffOrAdmin,

	OpUserList:       adminOnly,
	OpUserRoleUpdate: adminOnly,

	OpStatsView: staffOrAdmin,
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role Role, op Operation) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}
