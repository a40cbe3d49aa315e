package core

import "math"

// minNoiseScale replaces non-positive scales so sampling never divides by zero.
const minNoiseScale = 0.0001

// FractalNoise returns a w*h row-major field of layered value noise,
// normalised to [0, 1]. Each octave samples at a random lattice offset drawn
// from seed so equal seeds reproduce equal fields.
func FractalNoise(w, h, octaves int, scale, lacunarity, persistence float64, seed int64) []float64 {
	if w <= 0 || h <= 0 {
		return nil
	}
	if octaves < 1 {
		octaves = 1
	}
	if scale <= 0 {
		scale = minNoiseScale
	}

	rng := NewRNG(seed)
	offsets := make([][2]float64, octaves)
	for i := range offsets {
		offsets[i] = [2]float64{float64(rng.Offset(100000)), float64(rng.Offset(100000))}
	}

	field := make([]float64, w*h)
	minV, maxV := math.Inf(1), math.Inf(-1)
	halfW, halfH := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			amplitude, frequency, v := 1.0, 1.0, 0.0
			for i := 0; i < octaves; i++ {
				sx := (float64(x) - halfW + offsets[i][0]) / scale * frequency
				sy := (float64(y) - halfH + offsets[i][1]) / scale * frequency
				v += (valueNoise(sx, sy)*2 - 1) * amplitude
				amplitude *= persistence
				frequency *= lacunarity
			}
			field[y*w+x] = v
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}

	span := maxV - minV
	for i, v := range field {
		if span <= 0 {
			field[i] = 0.5
			continue
		}
		field[i] = (v - minV) / span
	}
	return field
}

// valueNoise interpolates hashed lattice values with a smoothstep fade.
func valueNoise(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := fade(x-x0), fade(y-y0)
	ix, iy := int64(x0), int64(y0)

	a := lattice(ix, iy)
	b := lattice(ix+1, iy)
	c := lattice(ix, iy+1)
	d := lattice(ix+1, iy+1)

	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

func fade(t float64) float64 { return t * t * (3 - 2*t) }

func lattice(x, y int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}
