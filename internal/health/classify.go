package health

import (
	"strings"
)

// missingExecutableIndicators mark failures caused by a command that does not
// resolve to an executable.
var missingExecutableIndicators = []string{
	"enoent",
	"executable file not found",
	"no such file or directory",
	"command not found",
}

// unreachableIndicators mark failures caused by the server not being there at all.
var unreachableIndicators = []string{
	"econnrefused",
	"connection refused",
	"fetch failed",
	"no such host",
	"connection reset",
}

// authIndicators mark failures caused by rejected credentials.
var authIndicators = []string{
	"401",
	"403",
	"unauthorized",
	"forbidden",
}

// Classify maps a probe failure onto the status taxonomy by matching
// indicative substrings, in priority order: missing executable, then
// unreachable, then auth, then the catch-all error classification.
func Classify(err error) Status {
	if err == nil {
		return StatusError
	}

	msg := strings.ToLower(err.Error())

	for _, indicator := range missingExecutableIndicators {
		if strings.Contains(msg, indicator) {
			return StatusCommandNotFound
		}
	}
	for _, indicator := range unreachableIndicators {
		if strings.Contains(msg, indicator) {
			return StatusUnreachable
		}
	}
	for _, indicator := range authIndicators {
		if strings.Contains(msg, indicator) {
			return StatusAuthFailed
		}
	}

	return StatusError
}
