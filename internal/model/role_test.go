package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermits(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		action  Action
		allowed bool
	}{
		{"admin can do everything", RoleAdmin, ActionReviewOrder, true},
		{"requester creates orders", RoleRequester, ActionCreateOrder, true},
		{"requester cannot take orders", RoleRequester, ActionTakeOrder, false},
		{"requester cannot complete orders", RoleRequester, ActionCompleteOrder, false},
		{"requester reviews orders", RoleRequester, ActionReviewOrder, true},
		{"executor takes orders", RoleExecutor, ActionTakeOrder, true},
		{"executor completes orders", RoleExecutor, ActionCompleteOrder, true},
		{"executor cannot create orders", RoleExecutor, ActionCreateOrder, false},
		{"executor rates requesters", RoleExecutor, ActionRateRequester, true},
		{"executor records readings", RoleExecutor, ActionRecordReading, true},
		{"supervisor reviews orders", RoleSupervisor, ActionReviewOrder, true},
		{"supervisor cannot record readings", RoleSupervisor, ActionRecordReading, false},
		{"collaborator reviews orders", RoleCollaborator, ActionReviewOrder, true},
		{"collaborator cannot create orders", RoleCollaborator, ActionCreateOrder, false},
		{"unknown role gets nothing", Role("GHOST"), ActionViewOrders, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, Permits(tt.role, tt.action))
		})
	}
}
