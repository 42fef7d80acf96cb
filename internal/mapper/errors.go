package mapper

// MapperError is returned when a raw value cannot be shaped into a model
type MapperError string

// Error implements the error interface
func (e MapperError) Error() string {
	return string(e)
}

const (
	ErrNotAnObject    MapperError = "value is not an object"
	ErrMalformedField MapperError = "malformed field"
)
