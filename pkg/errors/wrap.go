package errors

// ConfigError is an unusable setting or config file.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// NewConfigError reports a problem with component's settings.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error in " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError is a payload that could not be decoded. Format is the
// encoding, such as json or jwt.
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

// WrapParse reports err decoding source as format. nil stays nil.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return e.Format + " parse error: " + e.Message
	}
	return e.Format + " parse error in " + e.Source + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is a failed filesystem operation on Path.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

// WrapIO reports err during operation on path. nil stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "IO error during " + e.Operation + ": " + e.Message
	}
	return "IO error during " + e.Operation + " of " + e.Path + ": " + e.Message
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError is a failed operation on a named resource, such as loading
// the catalog or creating the client.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

// WrapResource reports err during operation on resource id. nil stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return "failed to " + e.Operation + " " + target + ": " + e.Message
}

func (e *ResourceError) Unwrap() error { return e.Err }
