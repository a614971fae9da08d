package error

// GenericError is implemented by every error that carries its own HTTP mapping.
type GenericError interface {
	ErrCode() string
	StatusCode() int
	Error() string
}
