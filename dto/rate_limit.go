package dto

import "time"

type RateLimitInfo struct {
	Allowed         bool       `json:"allowed"`
	Remaining       int        `json:"remaining"`
	ResetTime       *time.Time `json:"reset_time,omitempty"`
	CooldownMinutes int        `json:"cooldown_minutes,omitempty"`
	Message         string     `json:"message,omitempty"`
}
