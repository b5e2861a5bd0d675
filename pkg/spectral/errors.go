package spectral

import "fmt"

// DataShapeError reports mismatched axis lengths or ordering at series
// construction. It is fatal for the pipeline stage that produced it.
type DataShapeError struct {
	Field string
	Want  int
	Got   int
	Index int
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("spectral: bad %s at index %d: want %d, got %d", e.Field, e.Index, e.Want, e.Got)
}

// ConfigurationError reports a non-recoverable mismatch between configuration
// and input data, such as an emission-line center with no overlapping
// wavelength samples or an exposure window containing no input samples. It
// aborts the whole run rather than a single instrument.
type ConfigurationError struct {
	Stage string
	Index int
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: configuration error at index %d: %s", e.Stage, e.Index, e.Msg)
}
