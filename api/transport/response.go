package transport

// Envelope wraps the JSON bodies served next to the HTML pages.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Error  string      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

func NewSuccess(data interface{}) Envelope {
	return Envelope{Status: "success", Data: data}
}

// NewError reports a failure; data carries whatever partial result is known.
func NewError(code, message string, data interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: message, Data: data}
}
