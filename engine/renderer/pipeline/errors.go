package pipeline

import "fmt"

// LinkError reports a failure to link a vertex and fragment shader into a render pipeline.
type LinkError struct {
	Key string
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("pipeline %s link failed: %s", e.Key, e.Log)
}
