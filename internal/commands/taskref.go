package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"taskctl/internal/service"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first positional argument.
// Ids are the server's numeric identifiers.
func ParseTaskID(args []string) (service.ID, error) {
	if len(args) == 0 {
		return "", ErrTaskIDRequired
	}
	s := strings.TrimSpace(args[0])
	if s == "" {
		return "", ErrTaskIDRequired
	}
	s = strings.TrimPrefix(s, "#")
	if !isAllDigits(s) {
		return "", fmt.Errorf("invalid task id: %s", args[0])
	}
	return service.ID(s), nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
