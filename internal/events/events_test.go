package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Consumers key on these field names; the wire shape is part of the contract.
func TestEventJSONShape(t *testing.T) {
	occurredAt, err := time.Parse(time.RFC3339, "2026-02-01T10:30:00Z")
	require.NoError(t, err)

	raw, err := json.Marshal(Event{
		ID:         "6d1c7e0a-0000-0000-0000-000000000000",
		Type:       TypePaid,
		List:       "Shop1",
		Row:        4,
		Handle:     "@jane",
		OccurredAt: occurredAt,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "order_paid", decoded["type"])
	assert.Equal(t, "Shop1", decoded["list"])
	assert.Equal(t, float64(4), decoded["row"])
	assert.Equal(t, "@jane", decoded["handle"])
	assert.Contains(t, decoded, "event_id")
	assert.Contains(t, decoded, "occurred_at")
}
