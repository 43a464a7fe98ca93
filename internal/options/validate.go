// Package options provides shared utilities for input validation across
// packages.
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// names lists the alternatives for the error message, in the form
// "file or content". sources reports whether each alternative is set.
func ValidateSingleInputSource(names string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}
	if sourceCount != 1 {
		return fmt.Errorf("exactly one of %s must be provided (got %d)", names, sourceCount)
	}
	return nil
}
