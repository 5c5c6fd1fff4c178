package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tankops/internal/result"
)

// errReported marks a failure whose envelope was already written.
var errReported = errors.New("command failed")

// emit writes the outcome of a command. JSON output is the result envelope
// for successes and failures alike; text output prints data with show and
// leaves errors to the caller.
func emit[T any](w io.Writer, format string, data T, err error, message string, show func(io.Writer, T)) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if encErr := enc.Encode(result.From(data, err, message)); encErr != nil {
			return fmt.Errorf("writing output: %w", encErr)
		}

		if err != nil {
			return errReported
		}

		return nil
	}

	if err != nil {
		return err
	}

	show(w, data)

	return nil
}
