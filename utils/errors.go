package utils

import "fmt"

// UnknownCodecError represents an error indicating that no registered codec has the requested id.
type UnknownCodecError struct {
	Codec fmt.Stringer
}

// Error returns the error message for UnknownCodecError.
func (e *UnknownCodecError) Error() string {
	if e.Codec == nil {
		return "unknown codec"
	}
	return fmt.Sprintf("unknown codec %v", e.Codec)
}

// UnknownScenarioError represents an error indicating that the catalog has no such scenario.
type UnknownScenarioError struct {
	Name string
}

// Error returns the error message for UnknownScenarioError.
func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario %q", e.Name)
}
