package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Errors to display; nil entries are skipped
//   - verbose: If true, includes expected values and per-failure detail
//
// Output format:
//
//	Error: <error message>
//	  💡 <hint>: <resolution>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError dispatches on the error type.
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if ve, ok := IsValidationError(err); ok {
		printValidationError(w, ve, verbose)
		return
	}

	if pse, ok := IsPartialSuccess(err); ok {
		printPartialSuccessError(w, pse, verbose)
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

func printValidationError(w io.Writer, err *ValidationError, verbose bool) {
	if verbose {
		_, _ = fmt.Fprintf(w, "Error: %s\n", err.VerboseError())
	} else {
		_, _ = fmt.Fprintf(w, "Error: %s\n", err.Error())
	}
}

// printPartialSuccessError prints the counts and, in verbose mode, each failure.
func printPartialSuccessError(w io.Writer, err *PartialSuccessError, verbose bool) {
	_, _ = fmt.Fprintf(w, "Error: some checks failed (%s)\n", err.Error())
	if verbose && len(err.Errors) > 0 {
		_, _ = fmt.Fprintf(w, "  Failed checks:\n")
		for _, e := range err.Errors {
			_, _ = fmt.Fprintf(w, "    - %s\n", EnhanceErrorWithHint(e))
		}
	}
}
