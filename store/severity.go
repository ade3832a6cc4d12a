package store

import "fmt"

// Severity is the store's own ordering: lower value means more severe,
// like syslog. It is independent from the facade-side enumeration. The
// zero value is reserved as "unspecified" so that optional severity
// fields can tell an unset filter apart from CRIT.
type Severity uint8

const (
	UNSPECIFIED Severity = iota
	CRIT
	ERR
	WARNING
	NOTICE
	INFO
	DEBUG
	TRACE
)

func (s Severity) String() string {
	switch s {
	case UNSPECIFIED:
		return "unspecified"
	case CRIT:
		return "crit"
	case ERR:
		return "err"
	case WARNING:
		return "warning"
	case NOTICE:
		return "notice"
	case INFO:
		return "info"
	case DEBUG:
		return "debug"
	case TRACE:
		return "trace"
	}

	return "invalid"
}

func ParseSeverity(str string) (Severity, error) {
	switch str {
	case "crit", "critical":
		return CRIT, nil
	case "err", "error":
		return ERR, nil
	case "warning", "warn":
		return WARNING, nil
	case "notice":
		return NOTICE, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	case "trace":
		return TRACE, nil
	}

	return 0, fmt.Errorf("unknown severity %q", str)
}
