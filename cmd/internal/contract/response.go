package contract

// Envelope is the success body shared by every resource route.
// Data is omitted when nil, list routes always pass a non-nil slice.
type Envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Message(msg string) *Envelope {
	return &Envelope{Message: msg}
}

func Data(data any) *Envelope {
	return &Envelope{Data: data}
}

func MessageData(msg string, data any) *Envelope {
	return &Envelope{Message: msg, Data: data}
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
