package pace

import "time"

// ResponseLog records a single response event as processed by the selector.
// ResponseMs is the latency after clamping, which is what the memory model
// actually consumed.
type ResponseLog struct {
	ItemID     string    `json:"item_id"`
	Outcome    Outcome   `json:"outcome"`
	ResponseMs float64   `json:"response_ms"`
	RecordedAt time.Time `json:"recorded_at"`
}
