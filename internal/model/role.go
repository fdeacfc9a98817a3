package model

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleRequester    Role = "REQUESTER"
	RoleExecutor     Role = "EXECUTOR"
	RoleSupervisor   Role = "SUPERVISOR"
	RoleCollaborator Role = "COLLABORATOR"
)

type Action string

const (
	ActionCreateOrder    Action = "create_order"
	ActionViewOrders     Action = "view_orders"
	ActionTakeOrder      Action = "take_order"
	ActionCompleteOrder  Action = "complete_order"
	ActionReviewOrder    Action = "review_order"
	ActionRateRequester  Action = "rate_requester"
	ActionViewInventory  Action = "view_inventory"
	ActionViewLogbooks   Action = "view_logbooks"
	ActionRecordReading  Action = "record_reading"
)

// rolePermissions is the single source of truth for role gating. Identity
// checks (bound executor, resolved approval owner) happen on top of this in
// the service layer.
var rolePermissions = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionCreateOrder:   true,
		ActionViewOrders:    true,
		ActionTakeOrder:     true,
		ActionCompleteOrder: true,
		ActionReviewOrder:   true,
		ActionRateRequester: true,
		ActionViewInventory: true,
		ActionViewLogbooks:  true,
		ActionRecordReading: true,
	},
	RoleRequester: {
		ActionCreateOrder:   true,
		ActionViewOrders:    true,
		ActionReviewOrder:   true,
		ActionViewInventory: true,
		ActionViewLogbooks:  true,
	},
	RoleExecutor: {
		ActionViewOrders:    true,
		ActionTakeOrder:     true,
		ActionCompleteOrder: true,
		ActionRateRequester: true,
		ActionViewInventory: true,
		ActionViewLogbooks:  true,
		ActionRecordReading: true,
	},
	RoleSupervisor: {
		ActionCreateOrder:   true,
		ActionViewOrders:    true,
		ActionReviewOrder:   true,
		ActionViewInventory: true,
		ActionViewLogbooks:  true,
	},
	RoleCollaborator: {
		ActionViewOrders:    true,
		ActionReviewOrder:   true,
		ActionViewInventory: true,
		ActionViewLogbooks:  true,
	},
}

func Permits(role Role, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}
