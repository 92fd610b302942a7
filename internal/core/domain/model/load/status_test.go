package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{"already canonical", "PICKED_UP", StatusPickedUp},
		{"lowercase", "delivered", StatusDelivered},
		{"surrounding whitespace", "  NEW  ", StatusNew},
		{"internal space", "picked up", StatusPickedUp},
		{"whitespace run", "picked \t up", StatusPickedUp},
		{"empty", "", Status("")},
		{"blank", "   ", Status("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw))
		})
	}
}

func Test_Status_Partner(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNew, PartnerAssigned},
		{StatusPending, PartnerAssigned},
		{StatusDispatched, PartnerAssigned},
		{StatusAssigned, PartnerAssigned},
		{StatusAccepted, PartnerAssigned},
		{StatusPickedUp, PartnerPickedUp},
		{StatusDelivered, PartnerDelivered},
		{StatusCompleted, PartnerDelivered},
		{StatusCancelled, PartnerCancelled},
		{StatusCanceled, PartnerCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Partner())
		})
	}

	t.Run("unmapped values echo lower-cased", func(t *testing.T) {
		assert.Equal(t, "foo_bar", Status("FOO_BAR").Partner())
		assert.Equal(t, "in_transit", StatusInTransit.Partner())
	})

	t.Run("total over arbitrary input", func(t *testing.T) {
		assert.Equal(t, "some_future_status", NormalizeStatus("some future status").Partner())
	})
}

func Test_Status_Transitions(t *testing.T) {
	t.Run("picked up markers", func(t *testing.T) {
		assert.True(t, StatusPickedUp.MarksPickedUp())
		assert.True(t, StatusInTransit.MarksPickedUp())
		assert.False(t, StatusDelivered.MarksPickedUp())
		assert.False(t, StatusNew.MarksPickedUp())
	})

	t.Run("delivered markers", func(t *testing.T) {
		assert.True(t, StatusDelivered.MarksDelivered())
		assert.False(t, StatusCompleted.MarksDelivered())
		assert.False(t, StatusPickedUp.MarksDelivered())
	})

	t.Run("delivered in partner vocabulary", func(t *testing.T) {
		assert.True(t, StatusDelivered.IsDelivered())
		assert.True(t, StatusCompleted.IsDelivered())
		assert.False(t, StatusCancelled.IsDelivered())
	})
}
