package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/user/aktdoclix/internal/model"
)

// Error codes for structured error responses
const (
	ErrCodeRecordNotFound = "RECORD_NOT_FOUND"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeStorage        = "STORAGE_ERROR"
	ErrCodeFilesystem     = "FILESYSTEM_ERROR"
	ErrCodePathMissing    = "PATH_MISSING"
	ErrCodeConfig         = "CONFIG_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// JSONError represents a structured error response for --json output
type JSONError struct {
	Error   bool                   `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// JSONWarning is the --json form of a warning. Warnings do not change the exit code.
type JSONWarning struct {
	Warning bool   `json:"warning"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExitWithError outputs an error message and exits.
// If --json flag is set, outputs structured JSON error to stdout.
// Otherwise outputs plain text to stderr.
func ExitWithError(code int, errCode, message string, details map[string]interface{}) {
	if GetJSONOutput() {
		errResp := JSONError{
			Error:   true,
			Code:    errCode,
			Message: message,
			Details: details,
		}
		data, _ := json.Marshal(errResp)
		fmt.Println(string(data))
	} else {
		fmt.Fprintln(os.Stderr, "Error:", message)
	}
	Exit(code)
}

// Warn reports a condition the user should know about without failing.
func Warn(errCode, message string) {
	if GetJSONOutput() {
		data, _ := json.Marshal(JSONWarning{Warning: true, Code: errCode, Message: message})
		fmt.Println(string(data))
		return
	}
	fmt.Fprintln(os.Stderr, "Warning:", message)
}

// ExitRecordNotFound outputs a record not found error
func ExitRecordNotFound(id int64) {
	ExitWithError(1, ErrCodeRecordNotFound,
		fmt.Sprintf("record %d not found", id),
		map[string]interface{}{"id": id})
}

// ExitValidationError outputs a validation error
func ExitValidationError(message string, details map[string]interface{}) {
	ExitWithError(2, ErrCodeValidation, message, details)
}

// ExitOnError maps an archive error to its exit code and error code.
func ExitOnError(err error) {
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		ExitWithError(1, ErrCodeRecordNotFound, err.Error(), nil)
	case errors.Is(err, model.ErrPathMissing):
		ExitWithError(1, ErrCodePathMissing, err.Error(), nil)
	case model.IsValidation(err):
		ExitValidationError(err.Error(), nil)
	case model.IsStorage(err):
		ExitWithError(1, ErrCodeStorage, err.Error(), nil)
	case model.IsFilesystem(err):
		ExitWithError(1, ErrCodeFilesystem, err.Error(), nil)
	default:
		ExitWithError(1, ErrCodeInternal, err.Error(), nil)
	}
}

// exitOnRecordError is ExitOnError with the record id in not-found messages.
func exitOnRecordError(id int64, err error) {
	if errors.Is(err, model.ErrRecordNotFound) {
		ExitRecordNotFound(id)
		return
	}
	ExitOnError(err)
}

// parseID parses a record id argument. On failure it reports a validation
// error; the caller must return.
func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		ExitValidationError(fmt.Sprintf("invalid id '%s': %v", arg, model.ErrInvalidID),
			map[string]interface{}{"id": arg})
		return 0, false
	}
	return id, true
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
