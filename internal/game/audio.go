package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const audioSampleRate = beep.SampleRate(44100)

// waveType defines oscillator wave shapes.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator generates a raw wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case waveSaw:
			val = 2.0 * (o.phase - 0.5)
		case waveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	if releaseStart < e.attackSamples {
		releaseStart = e.attackSamples
	}
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func scaled(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// --- Cue constructors, one per event kind ---

func gunshotCue() beep.Streamer {
	burst := newOscillator(0, 90*time.Millisecond, waveNoise, audioSampleRate)
	return scaled(newEnvelope(burst, 90*time.Millisecond, time.Millisecond, 70*time.Millisecond, audioSampleRate), 0.5)
}

func impactCue() beep.Streamer {
	thud := newOscillator(140, 60*time.Millisecond, waveSquare, audioSampleRate)
	return scaled(newEnvelope(thud, 60*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, audioSampleRate), 0.25)
}

func enemyDownCue() beep.Streamer {
	fall := newOscillator(220, 250*time.Millisecond, waveSaw, audioSampleRate)
	return scaled(newEnvelope(fall, 250*time.Millisecond, 5*time.Millisecond, 200*time.Millisecond, audioSampleRate), 0.35)
}

func pickupCue() beep.Streamer {
	ding := newOscillator(880, 120*time.Millisecond, waveSine, audioSampleRate)
	return scaled(newEnvelope(ding, 120*time.Millisecond, time.Millisecond, 90*time.Millisecond, audioSampleRate), 0.4)
}

func distractionCue() beep.Streamer {
	clink := newOscillator(520, 150*time.Millisecond, waveSquare, audioSampleRate)
	return scaled(newEnvelope(clink, 150*time.Millisecond, time.Millisecond, 120*time.Millisecond, audioSampleRate), 0.3)
}

func winCue() beep.Streamer {
	lo := newOscillator(523.25, 400*time.Millisecond, waveSine, audioSampleRate)
	hi := newOscillator(783.99, 400*time.Millisecond, waveSine, audioSampleRate)
	mixed := beep.Mix(
		scaled(newEnvelope(lo, 400*time.Millisecond, 5*time.Millisecond, 300*time.Millisecond, audioSampleRate), 0.3),
		scaled(newEnvelope(hi, 400*time.Millisecond, 120*time.Millisecond, 250*time.Millisecond, audioSampleRate), 0.25),
	)
	return mixed
}

func failCue() beep.Streamer {
	drone := newOscillator(110, 600*time.Millisecond, waveSaw, audioSampleRate)
	return scaled(newEnvelope(drone, 600*time.Millisecond, 10*time.Millisecond, 450*time.Millisecond, audioSampleRate), 0.4)
}

// AudioPlayer turns tick events into synthesized cues on a shared mixer.
// Construction never fails hard: if the speaker cannot be opened the player
// stays disabled and every call is a no-op, so headless machines still run.
type AudioPlayer struct {
	mixer   *beep.Mixer
	enabled bool
	muted   bool
}

func NewAudioPlayer() *AudioPlayer {
	ap := &AudioPlayer{mixer: &beep.Mixer{}}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(50*time.Millisecond)); err != nil {
		return ap
	}
	speaker.Play(ap.mixer)
	ap.enabled = true
	return ap
}

// ToggleMute flips mute and reports the new state.
func (ap *AudioPlayer) ToggleMute() bool {
	ap.muted = !ap.muted
	return ap.muted
}

// HandleEvents queues one cue per event produced by a tick.
func (ap *AudioPlayer) HandleEvents(events []Event) {
	if !ap.enabled || ap.muted || len(events) == 0 {
		return
	}
	var cues []beep.Streamer
	for _, ev := range events {
		switch ev.Kind {
		case EventGunshot:
			cues = append(cues, gunshotCue())
		case EventImpact:
			cues = append(cues, impactCue())
		case EventEnemyDown:
			cues = append(cues, enemyDownCue())
		case EventPickup:
			cues = append(cues, pickupCue())
		case EventDistraction:
			cues = append(cues, distractionCue())
		case EventLevelComplete:
			cues = append(cues, winCue())
		case EventLevelFailed:
			cues = append(cues, failCue())
		}
	}
	if len(cues) == 0 {
		return
	}
	speaker.Lock()
	for _, c := range cues {
		ap.mixer.Add(c)
	}
	speaker.Unlock()
}
