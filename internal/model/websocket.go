package model

// WebSocket message types
const (
	WSMessageTypeStatus   = "status"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage is the minimal envelope for client-originated messages.
type WSMessage struct {
	Type string `json:"type"`
}

// WSStatusMessage is broadcast whenever a brief's status advances.
type WSStatusMessage struct {
	Type    string      `json:"type"`
	BriefID string      `json:"briefId"`
	Status  BriefStatus `json:"status"`
	Detail  string      `json:"detail,omitempty"`
}

// WSCompleteMessage is broadcast when a brief reaches ready.
type WSCompleteMessage struct {
	Type     string      `json:"type"`
	BriefID  string      `json:"briefId"`
	Status   BriefStatus `json:"status"`
	AudioURL string      `json:"audioUrl"`
}

// WSErrorMessage is broadcast when a brief reaches error.
type WSErrorMessage struct {
	Type    string  `json:"type"`
	BriefID string  `json:"briefId"`
	Error   WSError `json:"error"`
}

// WSError carries the error payload of a WSErrorMessage.
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
