package led

// Output abstracts a single physical LED line. Implementations handle the
// board-specific way of driving the LED.
type Output interface {
	// Write drives the line high (true) or low (false).
	Write(high bool) error

	// Close releases the underlying resource. Calling Close more than once is safe.
	Close() error
}
