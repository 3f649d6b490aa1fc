package reverb

// allpass is a Schroeder allpass over a fixed delay line:
// s = x + g·z, y = z - g·s.
type allpass struct {
	line []float64
	pos  int
	g    float64
}

func (a *allpass) process(x float64) float64 {
	z := a.line[a.pos]
	s := x + a.g*z
	a.line[a.pos] = s
	if a.pos++; a.pos == len(a.line) {
		a.pos = 0
	}
	return z - a.g*s
}

func (a *allpass) Reset() {
	clear(a.line)
	a.pos = 0
}

// comb is a feedback comb: y = x + g·y[n-N].
type comb struct {
	line []float64
	pos  int
	g    float64
}

func (c *comb) process(x float64) float64 {
	y := x + c.g*c.line[c.pos]
	c.line[c.pos] = y
	if c.pos++; c.pos == len(c.line) {
		c.pos = 0
	}
	return y
}

func (c *comb) Reset() {
	clear(c.line)
	c.pos = 0
}
