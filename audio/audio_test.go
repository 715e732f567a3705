package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ringside/parameter"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestOscillatorSine(t *testing.T) {
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, testRate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Stream = %d, %v, want 100, true", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("sample %d channels differ", i)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Err() = %v", osc.Err())
	}
}

func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, testRate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("square sample %d = %f", i, v)
		}
	}
}

func TestOscillatorEnds(t *testing.T) {
	d := 20 * time.Millisecond
	n, _ := drain(t, NewOscillator(440, d, WaveSine, testRate))
	if n != testRate.N(d) {
		t.Errorf("streamed %d samples, want %d", n, testRate.N(d))
	}
}

func TestEnvelopeFades(t *testing.T) {
	d := 10 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 2*time.Millisecond, 2*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at attack start", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain sample = %f, want 1", mid)
	}
	if last := buf[n-1][0]; last <= 0 || last >= 0.1 {
		t.Errorf("last sample = %f, want a small positive tail", last)
	}
}

func TestCuesAreFinite(t *testing.T) {
	tests := []struct {
		name string
		cue  beep.Streamer
		want time.Duration
	}{
		{"countdown", CountdownCue(0, testRate, 1), parameter.CueCountdownDuration},
		{"countdown last", CountdownCue(parameter.CountdownSteps-1, testRate, 1), parameter.CueCountdownDuration},
		{"fight", FightCue(testRate, 1), parameter.CueFightDuration},
		{"finish", FinishCue(testRate, 1), 2 * parameter.CueFinishDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.cue)
			if n != testRate.N(tt.want) {
				t.Errorf("samples = %d, want %d", n, testRate.N(tt.want))
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, CountdownCue(0, testRate, 0))
	if peak != 0 {
		t.Errorf("peak = %f, want 0", peak)
	}
}

func TestPlayerDropsBeforeStart(t *testing.T) {
	p := NewPlayer(2, nil)
	if p.volume != 1 {
		t.Errorf("volume = %f, want clamped to 1", p.volume)
	}

	p.Countdown(0)
	p.Fight()
	p.Finish()
	played, dropped := p.Stats()
	if played != 0 || dropped != 3 {
		t.Errorf("Stats() = %d, %d, want 0, 3", played, dropped)
	}
	p.Close()
}
