package entities

// PlaybackState is Idle when UtteranceID is empty.
type PlaybackState struct {
	UtteranceID string
}

func (s PlaybackState) IsSpeaking() bool {
	return s.UtteranceID != ""
}
