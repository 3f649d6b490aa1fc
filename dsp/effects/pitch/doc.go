// Package pitch provides a granular time-domain pitch shifter.
//
// Two grain units run half a grain apart. Each one resamples the most
// recent input at the pitch ratio into a triangular-windowed grain, and the
// overlapping windows sum to one. At zero semitones the output is the input
// delayed by one and a half grains plus two samples.
package pitch
