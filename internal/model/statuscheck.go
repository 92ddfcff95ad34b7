package model

import "time"

// StatusCheck records a client heartbeat submitted to the status endpoint.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
