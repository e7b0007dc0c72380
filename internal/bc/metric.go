package bc

// Metric measures the error between a source pixel and a decoded colour.
type Metric func(src [4]float32, dec [4]uint8) float32

// WeightedMetric returns a squared-error metric with per-channel weights.
// A zero weight ignores the channel, so {1, 1, 1, 0} is an RGB-only metric.
func WeightedMetric(weights [4]float32) Metric {
	return func(src [4]float32, dec [4]uint8) float32 {
		return SquaredError(4, src, dec, weights)
	}
}

// Uniform weighs all four channels equally.
var Uniform = WeightedMetric([4]float32{1, 1, 1, 1})

// UniformRGB ignores alpha.
var UniformRGB = WeightedMetric([4]float32{1, 1, 1, 0})
