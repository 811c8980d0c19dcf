package parameter

import "time"

// Spawn chime
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer latency
	AudioBufferDuration = 100 * time.Millisecond

	// ChimeDuration is the length of one spawn cue
	ChimeDuration = 90 * time.Millisecond

	// ChimeBaseFreq is the cue pitch for the slowest meteor, faster meteors pitch up
	ChimeBaseFreq = 660.0

	ChimeVolume = 0.2
)
