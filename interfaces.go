package logstore

// LogHandler is the capability set a logging facade needs to route log
// calls through a handler. Any type satisfying it can be bootstrapped
// into a facade's dispatch path; Handler is the store-backed
// implementation.
type LogHandler interface {
	// Log records one message. File, function and line are forwarded to
	// the store verbatim; capturing them is the facade's job.
	Log(severity Severity, message string, metadata Metadata, file, function string, line uint) error

	// Metadata and SetMetadata read and write single entries of the
	// handler's static metadata.
	Metadata(key string) (Value, bool)
	SetMetadata(key string, value Value)

	// Level and SetLevel expose the minimum severity. The handler stores
	// it; filtering against it is done by the facade, not inside Log.
	Level() Severity
	SetLevel(severity Severity)
}
