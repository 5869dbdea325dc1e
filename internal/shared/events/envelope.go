package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape published on the Marlowe bus.
// Outbox relays build these from persisted rows; keep fields backward
// compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	PartitionKey  string          `json:"partition_key"`
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}
