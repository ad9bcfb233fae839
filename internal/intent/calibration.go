package intent

import (
	"math"
	"sync"

	"finance-assistant/config"
)

// Calibrator turns raw rule scores into calibrated probabilities. The
// temperature is nudged online from routing feedback, so access is
// synchronized for concurrent sessions.
type Calibrator struct {
	mu          sync.RWMutex
	temperature float64
	bias        float64
	scale       float64
	minTemp     float64
	maxTemp     float64
}

// NewCalibrator builds a Calibrator from router config.
func NewCalibrator(cfg config.RouterConfig) *Calibrator {
	temp := cfg.Temperature
	if temp <= 0 {
		temp = 1
	}
	minTemp := cfg.MinTemperature
	if minTemp <= 0 {
		minTemp = 0.5
	}
	maxTemp := cfg.MaxTemperature
	if maxTemp <= minTemp {
		maxTemp = minTemp * 4
	}
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	return &Calibrator{
		temperature: temp,
		bias:        cfg.Bias,
		scale:       scale,
		minTemp:     minTemp,
		maxTemp:     maxTemp,
	}
}

// Calibrate maps a raw score to [0,1] via a temperature-scaled logistic
// transform followed by the configured scale and bias.
func (c *Calibrator) Calibrate(raw float64) float64 {
	c.mu.RLock()
	temp, bias, scale := c.temperature, c.bias, c.scale
	c.mu.RUnlock()

	logistic := 1 / (1 + math.Exp(-raw/temp))
	v := logistic*scale + bias
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ConfidenceFor buckets a calibrated probability.
func ConfidenceFor(calibrated float64) ConfidenceLevel {
	switch {
	case calibrated >= 0.7:
		return ConfidenceHigh
	case calibrated >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Feedback is one labeled routing outcome.
type Feedback struct {
	ExpectedIntent Intent
	ActualIntent   Intent
}

// ApplyFeedback nudges the temperature per sample: a misroute cools the
// calibration (sharper probabilities), a correct route warms it slightly.
// The temperature never leaves [minTemp, maxTemp].
func (c *Calibrator) ApplyFeedback(fb Feedback) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fb.ExpectedIntent == fb.ActualIntent {
		c.temperature *= 1.01
	} else {
		c.temperature *= 0.96
	}

	if c.temperature < c.minTemp {
		c.temperature = c.minTemp
	}
	if c.temperature > c.maxTemp {
		c.temperature = c.maxTemp
	}
}

// Temperature returns the current calibration temperature.
func (c *Calibrator) Temperature() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temperature
}
