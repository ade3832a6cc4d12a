package logstore

import (
	"fmt"

	"github.com/logward/go-logstore/store"
)

// Severity is the facade-side level enumeration, ascending in severity.
type Severity uint8

const (
	TRACE Severity = iota
	DEBUG
	INFO
	NOTICE
	WARNING
	ERR
	CRIT
)

func (s Severity) String() string {
	switch s {
	case TRACE:
		return "trace"
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case NOTICE:
		return "notice"
	case WARNING:
		return "warning"
	case ERR:
		return "error"
	case CRIT:
		return "critical"
	}

	return "invalid"
}

func ParseSeverity(str string) (Severity, error) {
	switch str {
	case "trace":
		return TRACE, nil
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "notice":
		return NOTICE, nil
	case "warning", "warn":
		return WARNING, nil
	case "error", "err":
		return ERR, nil
	case "critical", "crit":
		return CRIT, nil
	}

	return 0, fmt.Errorf("unknown severity %q", str)
}

// storeSeverity translates to the store's enumeration. The two orderings
// run in opposite directions, so every level is spelled out; there is no
// fallback case.
func storeSeverity(s Severity) store.Severity {
	switch s {
	case TRACE:
		return store.TRACE
	case DEBUG:
		return store.DEBUG
	case INFO:
		return store.INFO
	case NOTICE:
		return store.NOTICE
	case WARNING:
		return store.WARNING
	case ERR:
		return store.ERR
	case CRIT:
		return store.CRIT
	}

	panic("logstore: severity out of range")
}

func facadeSeverity(s store.Severity) Severity {
	switch s {
	case store.TRACE:
		return TRACE
	case store.DEBUG:
		return DEBUG
	case store.INFO:
		return INFO
	case store.NOTICE:
		return NOTICE
	case store.WARNING:
		return WARNING
	case store.ERR:
		return ERR
	case store.CRIT:
		return CRIT
	}

	panic("logstore: severity out of range")
}
