package api

import "time"

type ActivityEvent struct {
	Kind      string    `json:"kind"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityResponse struct {
	Events []ActivityEvent `json:"events"`
}
