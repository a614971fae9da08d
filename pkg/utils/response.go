package utils

// ResponseData is the envelope used by the operational API endpoints.
type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PanicIfNeeded panics with err so the recovery middleware can turn it into a JSON response.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
