package effectchain

// Context provides environmental information that unit factories need.
type Context struct {
	SampleRate float64
	// Seed is the base seed of units that draw random numbers. Per-channel
	// instances add their channel index.
	Seed uint64
}
