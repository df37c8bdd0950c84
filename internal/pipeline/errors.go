package pipeline

// ParseError reports that an input produced no usable data.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

const (
	reasonNoSeconds     = "no seconds found"
	reasonNoTemperature = "no time/temperature data found"
	reasonEmptyAxis     = "empty time axis"
)
