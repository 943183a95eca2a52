package timesync

// Converter owns the calibration captured at its construction and builds
// conversion functions from it.
type Converter struct {
	src   *Source
	start CalibrationSet
	unit  Unit
}

// NewConverter calibrates src immediately and synchronously.
//
// Do not run several calibrations concurrently: on platforms with per-core
// counters overlapping windows may observe inconsistent rates.
func NewConverter(src Source) *Converter {
	return &Converter{
		src:   &src,
		start: src.MeasurePairs(),
		unit:  src.Unit,
	}
}

// NewSystemConverter calibrates the build's native clocks.
func NewSystemConverter(allowMonotonic bool) *Converter {
	return NewConverter(SystemSource(allowMonotonic))
}

// NewConverterFromSet wraps a calibration set captured elsewhere. Converters
// built this way cannot re-measure, so MakeSpanningConverter behaves like
// MakeConverter.
func NewConverterFromSet(set CalibrationSet, unit Unit) *Converter {
	return &Converter{
		start: set,
		unit:  unit,
	}
}

// Calibration returns a copy of the construction-time calibration set.
func (c *Converter) Calibration() CalibrationSet {
	return c.start
}

// Unit returns the encoding of the approximate readings being converted.
func (c *Converter) Unit() Unit {
	return c.unit
}

// Estimate fits the construction-time calibration set. The result depends
// only on that set, so repeated calls are identical.
func (c *Converter) Estimate() Estimate {
	return Fit(c.start, c.unit)
}

// MakeConverter returns a conversion function for the construction-time
// calibration.
func (c *Converter) MakeConverter() Func {
	return c.Estimate().Func()
}

// SpanningEstimate captures a second calibration set now and fits the rate
// across both. The longer the converter has existed, the better the rate.
func (c *Converter) SpanningEstimate() Estimate {
	if c.src == nil {
		return c.Estimate()
	}
	return FitSpanning(c.start, c.src.MeasurePairs(), c.unit)
}

// MakeSpanningConverter returns SpanningEstimate().Func().
func (c *Converter) MakeSpanningConverter() Func {
	return c.SpanningEstimate().Func()
}
