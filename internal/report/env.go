package report

// Env returns the variables attribute expressions are evaluated against.
func (r *Report) Env() map[string]interface{} {
	environ := r.Environ
	if environ == nil {
		environ = map[string]string{}
	}
	return map[string]interface{}{
		"env":             environ,
		"unit":            r.Unit,
		"monotonic":       r.Monotonic,
		"rate":            r.Rate,
		"frequency_hz":    r.FrequencyHz,
		"degenerate":      r.Degenerate,
		"spanning":        r.Spanning,
		"hold_ns":         r.HoldNs,
		"window_ns":       r.WindowNs,
		"skew_min_ns":     r.SkewMinNs,
		"skew_median_ns":  r.SkewMedianNs,
		"skew_max_ns":     r.SkewMaxNs,
		"backward_pairs":  r.BackwardPairs,
		"residual_max_ns": r.ResidualMaxNs,
		"verify_error_ns": r.VerifyErrorNs,
		"wall_read_ns":    r.WallReadNs,
		"approx_read_ns":  r.ApproxReadNs,
	}
}

// PrototypeEnv returns an Env with zero values, for type-checking
// expressions before any report exists.
func PrototypeEnv() map[string]interface{} {
	return (&Report{}).Env()
}
