package channel

// Message type constants for the embedded tool wire protocol. These values
// are shared with the third-party tools and must not change.
const (
	MsgToolReady    = "TOOL_READY"
	MsgToolResize   = "TOOL_RESIZE"
	MsgToolComplete = "TOOL_COMPLETE"
	MsgToolCancel   = "TOOL_CANCEL"
)

// Frame height clamp bounds, in pixels. Resize hints outside this range are
// clamped before being applied.
const (
	MinFrameHeight = 400
	MaxFrameHeight = 800
)

// ClientPayload is the contact block of a TOOL_COMPLETE message. Email is the
// only mandatory field.
type ClientPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Message is one inbound frame message.
type Message struct {
	Type       string         `json:"type"`
	ClientData ClientPayload  `json:"clientData,omitempty"`
	Results    map[string]any `json:"results,omitempty"`
	Height     int            `json:"height,omitempty"`
}

// ClampHeight bounds a TOOL_RESIZE height hint to the allowed frame range.
func ClampHeight(h int) int {
	if h < MinFrameHeight {
		return MinFrameHeight
	}
	if h > MaxFrameHeight {
		return MaxFrameHeight
	}
	return h
}
