package error

import "net/http"

// GenerationBlockedError means the model answered but gave nothing usable.
type GenerationBlockedError string

func (err GenerationBlockedError) Error() string {
	return string(err)
}

func (err GenerationBlockedError) ErrCode() string {
	return "GENERATION_BLOCKED"
}

func (err GenerationBlockedError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// ServiceBusyError is returned when another generation already holds the processing guard.
type ServiceBusyError string

func (err ServiceBusyError) Error() string {
	return string(err)
}

func (err ServiceBusyError) ErrCode() string {
	return "SERVICE_BUSY"
}

func (err ServiceBusyError) StatusCode() int {
	return http.StatusServiceUnavailable
}
