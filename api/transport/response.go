package transport

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every JSON body the site API returns.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Meta   *Meta       `json:"meta,omitempty"`
}

// Meta holds response details that sit beside the payload.
type Meta struct {
	// Locale is the language localized content was rendered in.
	Locale string `json:"locale,omitempty"`
	// Details is extra context for an error, such as the health report of a degraded instance.
	Details interface{} `json:"details,omitempty"`
}

func Success(data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// Localized is a success envelope for public content rendered in locale.
func Localized(data interface{}, locale string) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Meta: &Meta{Locale: locale}}
}

func Failure(code, message string) Envelope {
	return Envelope{Status: StatusError, Code: code, Error: message}
}

// WithDetails attaches details to an error envelope.
func (e Envelope) WithDetails(details interface{}) Envelope {
	if e.Meta == nil {
		e.Meta = &Meta{}
	}
	e.Meta.Details = details
	return e
}

// String renders the envelope for bodies written outside a handler, like middleware rejections.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return `{"status":"error"}`
	}
	return string(out)
}
