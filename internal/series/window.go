package series

import (
	"math"
)

// Window is a fixed-size sliding window over a numeric sequence. Values
// pushed beyond the capacity evict the oldest entry. It is the rolling
// state shared by the window-based indicators (Bollinger, CCI, Stochastic,
// volume moving average).
type Window struct {
	size   int
	values []float64
	head   int
	count  int
	sum    float64
}

// NewWindow creates a sliding window holding up to size values.
func NewWindow(size int) *Window {
	return &Window{
		size:   size,
		values: make([]float64, size),
	}
}

// Push appends a value, evicting the oldest one once the window is full.
func (w *Window) Push(value float64) {
	if w.count == w.size {
		w.sum -= w.values[w.head]
	}

	w.values[w.head] = value
	w.head = (w.head + 1) % w.size

	if w.count < w.size {
		w.count++
	}

	w.sum += value
}

// Full reports whether the window holds size values.
func (w *Window) Full() bool {
	return w.count == w.size
}

// Count returns the number of values currently held.
func (w *Window) Count() int {
	return w.count
}

// Sum returns the sum of the held values.
func (w *Window) Sum() float64 {
	return w.sum
}

// Mean returns the arithmetic mean of the held values, or 0 for an empty
// window.
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}

	return w.sum / float64(w.count)
}

// StdDev returns the population standard deviation of the held values.
func (w *Window) StdDev() float64 {
	if w.count == 0 {
		return 0
	}

	mean := w.Mean()

	var squaredDiffSum float64

	for _, v := range w.Values() {
		diff := v - mean
		squaredDiffSum += diff * diff
	}

	return math.Sqrt(squaredDiffSum / float64(w.count))
}

// MeanAbsDev returns the mean absolute deviation of the held values from
// their mean.
func (w *Window) MeanAbsDev() float64 {
	if w.count == 0 {
		return 0
	}

	mean := w.Mean()

	var absDiffSum float64

	for _, v := range w.Values() {
		absDiffSum += math.Abs(v - mean)
	}

	return absDiffSum / float64(w.count)
}

// Max returns the largest held value, or 0 for an empty window.
func (w *Window) Max() float64 {
	if w.count == 0 {
		return 0
	}

	max := math.Inf(-1)
	for _, v := range w.Values() {
		if v > max {
			max = v
		}
	}

	return max
}

// Min returns the smallest held value, or 0 for an empty window.
func (w *Window) Min() float64 {
	if w.count == 0 {
		return 0
	}

	min := math.Inf(1)
	for _, v := range w.Values() {
		if v < min {
			min = v
		}
	}

	return min
}

// Oldest returns the oldest held value, or 0 for an empty window.
func (w *Window) Oldest() float64 {
	if w.count == 0 {
		return 0
	}

	if w.count < w.size {
		return w.values[0]
	}

	return w.values[w.head]
}

// Values returns the held values in insertion order.
func (w *Window) Values() []float64 {
	out := make([]float64, 0, w.count)

	start := w.head - w.count
	if start < 0 {
		start += w.size
	}

	for i := 0; i < w.count; i++ {
		out = append(out, w.values[(start+i)%w.size])
	}

	return out
}

// Reset drops all held values.
func (w *Window) Reset() {
	w.head = 0
	w.count = 0
	w.sum = 0
}
