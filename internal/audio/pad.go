// Package audio provides an optional ambient pad that breathes with the
// blob: a detuned triangle-wave chord through a low-pass filter whose cutoff
// follows the active motion parameters.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/aura/internal/phase"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Gm7 add9 voicing, the same register as a quiet hum.
var chordFreqs = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

type Pad struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	energy float64

	energySmooth float64
	time         float64
	filterState  [2]float64
	delayLine    [2][]float64
	delayHead    int

	Active bool
}

func NewPad() *Pad {
	delayLen := int(float64(SampleRate) * 0.6)
	return &Pad{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (p *Pad) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	p.stream = stream
	p.Active = true
	return nil
}

func (p *Pad) Stop() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		p.stream = nil
	}
	portaudio.Terminate()
	p.Active = false
}

// SetParams maps the active motion parameters onto a single energy value;
// pulse and chaos open the filter, speed keeps a floor of movement.
func (p *Pad) SetParams(params phase.Params) {
	e := params.Speed*0.3 + params.Chaos*0.8 + params.Pulse*1.2
	p.mu.Lock()
	p.energy = e
	p.mu.Unlock()
}

func triangle(t float64) float64 {
	f := t - math.Floor(t)
	return 4.0*math.Abs(f-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (p *Pad) process(out [][]float32) {
	p.mu.Lock()
	target := p.energy
	p.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	const vol = 0.22

	for i := 0; i < len(out[0]); i++ {
		// Very slow morph so phase switches swell rather than jump.
		p.energySmooth = p.energySmooth*0.9995 + target*0.0005
		cutoff := 250.0 + math.Min(p.energySmooth*600.0, 1100.0)

		sampleL, sampleR := 0.0, 0.0
		for j, f := range chordFreqs {
			g := 1.0 / float64(len(chordFreqs))
			lfo := math.Sin(p.time*0.2 + float64(j))
			sampleL += triangle(p.time*(f*0.999)) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(p.time*(f*1.001)) * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, p.filterState[0] = lpf(sampleL, cutoff, dt, p.filterState[0])
		outR, p.filterState[1] = lpf(sampleR, cutoff, dt, p.filterState[1])

		delayL := p.delayLine[0][p.delayHead]
		delayR := p.delayLine[1][p.delayHead]
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		p.delayLine[0][p.delayHead] = mixL * 0.7
		p.delayLine[1][p.delayHead] = mixR * 0.7
		p.delayHead = (p.delayHead + 1) % len(p.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)
		p.time += dt
	}
}
