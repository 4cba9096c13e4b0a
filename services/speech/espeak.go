package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"news-pulse/models/constants"

	"github.com/rs/zerolog/log"
)

// Espeak drives an espeak-ng compatible synthesizer binary. The voice list is
// loaded in the background, like browsers do.
type Espeak struct {
	command string

	mu        sync.RWMutex
	voices    []Voice
	listeners []func()
}

func NewEspeak(command string) *Espeak {
	platform := &Espeak{command: command}
	go platform.loadVoices()
	return platform
}

func (e *Espeak) Voices() []Voice {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Voice(nil), e.voices...)
}

func (e *Espeak) OnVoicesChanged(listener func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

func (e *Espeak) Speak(ctx context.Context, utterance Utterance) error {
	var args []string
	if utterance.Voice != nil {
		args = append(args, "-v", utterance.Voice.ID)
	}
	args = append(args, "--", utterance.Text)

	output, err := exec.CommandContext(ctx, e.command, args...).CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", e.command, err, strings.TrimSpace(string(output)))
	}

	return nil
}

func (e *Espeak) loadVoices() {
	output, err := exec.Command(e.command, "--voices").Output()
	if err != nil {
		log.Warn().Err(err).Msgf("Cannot list %s voices, platform default voice only", e.command)
		return
	}

	voices := parseVoices(string(output))

	e.mu.Lock()
	e.voices = voices
	listeners := append([]func(){}, e.listeners...)
	e.mu.Unlock()

	log.Info().Int(constants.LogVoiceNumber, len(voices)).Msg("Voices loaded")
	for _, listener := range listeners {
		listener()
	}
}

// parseVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 3)
func parseVoices(output string) []Voice {
	var voices []Voice
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}

		voices = append(voices, Voice{
			ID:       fields[1],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
		})
	}

	return voices
}
