package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoResponse means the request never got an HTTP response: the server is
// down, the connection dropped or the context was cancelled.
var ErrNoResponse = errors.New("no response from server")

// Messages shown when the server gives nothing better.
const (
	MsgNoResponse   = "Server not responding. Please try again later."
	MsgEmailInUse   = "This email is already in use. Please use a different email."
	MsgLoginFailed  = "Login failed! Invalid credentials."
	MsgRegistration = "Registration failed!"
)

// StatusError is a response that arrived with an error status, or with a
// success status the caller did not accept.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// Message turns a request error into the text shown to the user. fallback is
// used when the server sent no message of its own.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoResponse) {
		return MsgNoResponse
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// RegistrationMessage is Message with the duplicate e-mail case spelled out.
func RegistrationMessage(err error) string {
	if IsStatus(err, http.StatusConflict) {
		return MsgEmailInUse
	}
	return Message(err, MsgRegistration)
}

// serverMessage extracts a message from an error body: the "message" or
// "error" field of a JSON object, otherwise the body text itself.
func serverMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		if strings.HasPrefix(text, "{") {
			return ""
		}
	}
	return text
}
