package rigid

import "fmt"

// DimensionError reports a state or action vector whose length does not
// match what the world's DOF count requires.
type DimensionError struct {
	Label string
	Want  int
	Got   int
}

func (e DimensionError) Error() string {
	return fmt.Sprintf("%s: want length %d, got %d", e.Label, e.Want, e.Got)
}

// IndexError reports a body index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("body index %d out of range [0, %d)", e.Index, e.Len)
}
