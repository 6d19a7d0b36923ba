package format

import "errors"

// Formatting error categories. All are fatal for the file being processed:
// the caller must not persist any output when one of these is returned.
var (
	// ErrEngine indicates the external pretty-printing engine rejected or
	// failed on the input. Engine errors are not retried.
	ErrEngine = errors.New("formatting engine failed")

	// ErrEncoding indicates the engine produced output that is not valid
	// UTF-8 text.
	ErrEncoding = errors.New("engine output is not valid UTF-8")

	// ErrStructureChanged indicates safe mode detected that formatting
	// altered the structure of the program. The transformation is discarded.
	ErrStructureChanged = errors.New("formatting changed code structure")
)
