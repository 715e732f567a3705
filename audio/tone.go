package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/ringside/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates a finite raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
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
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
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

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
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
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// shaped is a sine tone with a short click-free envelope
func shaped(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	edge := d / 8
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, edge, 2*edge, rate)
}

// CountdownCue is a short blip, pitched up on the last step
func CountdownCue(step int, rate beep.SampleRate, vol float64) beep.Streamer {
	freq := parameter.CueCountdownFreq
	if step >= parameter.CountdownSteps-1 {
		freq *= 1.5
	}
	return newVolume(shaped(freq, parameter.CueCountdownDuration, WaveSine, rate), vol)
}

// FightCue is a bright tone with an octave-down square underneath
func FightCue(rate beep.SampleRate, vol float64) beep.Streamer {
	d := parameter.CueFightDuration
	body := beep.Streamer(shaped(parameter.CueFightFreq, d, WaveSine, rate))
	if sine, err := generators.SineTone(rate, parameter.CueFightFreq*2); err == nil {
		// Overtone shares the body's length and envelope
		over := NewEnvelope(beep.Take(rate.N(d), sine), d, d/8, d/4, rate)
		body = beep.Mix(newVolume(body, 0.7), newVolume(over, 0.2))
	}
	under := shaped(parameter.CueFightFreq/2, d, WaveSquare, rate)
	return newVolume(beep.Mix(body, newVolume(under, 0.15)), vol)
}

// FinishCue is a rising two-note chime
func FinishCue(rate beep.SampleRate, vol float64) beep.Streamer {
	d := parameter.CueFinishDuration
	return newVolume(beep.Seq(
		shaped(parameter.CueFinishFreq, d, WaveSine, rate),
		shaped(parameter.CueFinishFreq*4/3, d, WaveSine, rate),
	), vol)
}
