package dsp

import "math"

// biquad is a direct-form-I second order IIR filter section using the
// Audio EQ Cookbook (RBJ) coefficient formulas.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

func (f *biquad) reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

func (f *biquad) setCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = a1 / a0
	f.a2 = a2 / a0
}

// lowShelf configures the section as a low shelf with slope 1.
func (f *biquad) lowShelf(sampleRate, freq, gainDB float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / 2 * math.Sqrt2
	sq := 2 * math.Sqrt(a) * alpha

	f.setCoefficients(
		a*((a+1)-(a-1)*cosw+sq),
		2*a*((a-1)-(a+1)*cosw),
		a*((a+1)-(a-1)*cosw-sq),
		(a+1)+(a-1)*cosw+sq,
		-2*((a-1)+(a+1)*cosw),
		(a+1)+(a-1)*cosw-sq,
	)
}

// highShelf configures the section as a high shelf with slope 1.
func (f *biquad) highShelf(sampleRate, freq, gainDB float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / 2 * math.Sqrt2
	sq := 2 * math.Sqrt(a) * alpha

	f.setCoefficients(
		a*((a+1)+(a-1)*cosw+sq),
		-2*a*((a-1)+(a+1)*cosw),
		a*((a+1)+(a-1)*cosw-sq),
		(a+1)-(a-1)*cosw+sq,
		2*((a-1)-(a+1)*cosw),
		(a+1)-(a-1)*cosw-sq,
	)
}

// peaking configures the section as a peaking EQ with the given Q.
func (f *biquad) peaking(sampleRate, freq, gainDB, q float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	f.setCoefficients(
		1+alpha*a,
		-2*cosw,
		1-alpha*a,
		1+alpha/a,
		-2*cosw,
		1-alpha/a,
	)
}
