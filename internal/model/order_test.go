package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderTypeRequirements(t *testing.T) {
	assert.True(t, OrderTypePredictive.RequiresSupervisor())
	assert.True(t, OrderTypeImprovement.RequiresSupervisor())
	assert.True(t, OrderTypeAutonomous.RequiresSupervisor())
	assert.False(t, OrderTypeCorrective.RequiresSupervisor())
	assert.False(t, OrderTypePreventive.RequiresSupervisor())

	assert.True(t, OrderTypePreventive.RequiresCollaborator())
	assert.False(t, OrderTypeCorrective.RequiresCollaborator())

	assert.Equal(t, []string{"equipment", "location", "symptom"}, OrderTypeCorrective.RequiredMetadata())
	assert.NotEmpty(t, OrderTypeAutonomous.RequiredMetadata())
}

func TestApprovalOwner(t *testing.T) {
	requester := uuid.New()
	supervisor := uuid.New()
	collaborator := uuid.New()

	tests := []struct {
		name  string
		order Order
		want  uuid.UUID
	}{
		{
			name:  "preventive routes to collaborator",
			order: Order{Type: OrderTypePreventive, RequesterID: requester, CollaboratorID: &collaborator},
			want:  collaborator,
		},
		{
			name:  "preventive without collaborator falls back to requester",
			order: Order{Type: OrderTypePreventive, RequesterID: requester},
			want:  requester,
		},
		{
			name:  "corrective routes to requester",
			order: Order{Type: OrderTypeCorrective, RequesterID: requester, SupervisorID: &supervisor},
			want:  requester,
		},
		{
			name:  "predictive routes to supervisor",
			order: Order{Type: OrderTypePredictive, RequesterID: requester, SupervisorID: &supervisor},
			want:  supervisor,
		},
		{
			name:  "autonomous routes to supervisor",
			order: Order{Type: OrderTypeAutonomous, RequesterID: requester, SupervisorID: &supervisor},
			want:  supervisor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.ApprovalOwner())
		})
	}
}

func TestLogbookEvaluate(t *testing.T) {
	logbook := Logbook{MinValue: 2.5, MaxValue: 7.5}

	assert.Equal(t, ReadingStatusNormal, logbook.Evaluate(2.5))
	assert.Equal(t, ReadingStatusNormal, logbook.Evaluate(5.0))
	assert.Equal(t, ReadingStatusNormal, logbook.Evaluate(7.5))
	assert.Equal(t, ReadingStatusOutOfRange, logbook.Evaluate(2.4))
	assert.Equal(t, ReadingStatusOutOfRange, logbook.Evaluate(7.6))
}
