package models

import "encoding/json"

// User is the record returned by the backend on login or registration.
// The client enforces no schema on it; known keys are read through the
// accessor methods and anything else is carried along untouched.
type User map[string]any

// Email returns the "Email" field when present and a string.
func (u User) Email() string {
	s, _ := u["Email"].(string)
	return s
}

// Token returns the bearer token issued on login, if any.
func (u User) Token() string {
	s, _ := u["Token"].(string)
	return s
}

// ID returns the numeric user id. JSON numbers decode to float64,
// json.Number is accepted for callers that decode with UseNumber.
func (u User) ID() (int64, bool) {
	switch v := u["ID"].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}

// Plan is a subscription plan offered on registration.
type Plan struct {
	ID           int    `json:"ID"`
	Name         string `json:"Name"`
	PlaylistSize int    `json:"PlaylistSize"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"Email" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

// Registration is the register request body.
type Registration struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
	PlanID   int    `json:"PlanID"`
}
