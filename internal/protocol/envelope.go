package protocol

import (
	"encoding/json"
	"time"
)

// Metric is implemented by every payload an Envelope can carry.
type Metric interface {
	MetricType() string
}

// Envelope wraps a payload with the host and time it was collected on.
type Envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Hostname  string    `json:"hostname"`
	Data      Metric    `json:"data"`
}

// Wrap returns an Envelope for m typed by m.MetricType.
func Wrap(m Metric, hostname string, at time.Time) Envelope {
	return Envelope{
		Type:      m.MetricType(),
		Timestamp: at,
		Hostname:  hostname,
		Data:      m,
	}
}

// MarshalJSON ensures Data is serialized with its concrete type.
func (e Envelope) MarshalJSON() ([]byte, error) {
	type Alias Envelope
	return json.Marshal(&struct {
		Alias
		Data any `json:"data"`
	}{
		Alias: Alias(e),
		Data:  e.Data,
	})
}

// WMIResult carries the rows of one management-instrumentation topic.
type WMIResult struct {
	Topic string `json:"topic"`
	Class string `json:"class"`
	Rows  any    `json:"rows"`
}

func (WMIResult) MetricType() string { return "wmi" }
