package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescheduleRequest_StatusPredicates(t *testing.T) {
	pending := &RescheduleRequest{Status: ReschedulePending}
	assert.True(t, pending.IsPending())
	assert.False(t, pending.IsTerminal())

	for _, status := range []RescheduleStatus{RescheduleApproved, RescheduleRejected, RescheduleCancelled} {
		r := &RescheduleRequest{Status: status}
		assert.False(t, r.IsPending(), "status %s", status)
		assert.True(t, r.IsTerminal(), "status %s", status)
	}
}

func TestRescheduleRequest_Parties(t *testing.T) {
	r := &RescheduleRequest{RequestedBy: 1, RequestedFor: 2}

	assert.True(t, r.IsRequester(1))
	assert.False(t, r.IsRequester(2))

	assert.True(t, r.IsCounterparty(2))
	assert.False(t, r.IsCounterparty(1))
}
