package progression

// Visual progress curves derived from the click total. All return values in [0, 1].

// GrowthScale is the dormant cell's size fraction: 0 at Initial, 1 after GrowthClicks more.
func (t Thresholds) GrowthScale(count int64) float64 {
	if count <= t.Initial {
		return 0
	}
	if t.GrowthClicks <= 0 {
		return 1
	}
	return clamp01(float64(count-t.Initial) / float64(t.GrowthClicks))
}

// OrganelleOpacity fades the cell's interior out across PreEvolution.
func (t Thresholds) OrganelleOpacity(count int64) float64 {
	if count < t.PreEvolutionStart {
		return 1
	}
	if count >= t.PreEvolutionEnd {
		return 0
	}
	x := float64(count-t.PreEvolutionStart) / float64(t.PreEvolutionEnd-t.PreEvolutionStart)
	return 1 - smoothstep(x)
}

// MorphProgress runs 0..1 across Morphing and stays at 1 in SquidForm.
func (t Thresholds) MorphProgress(count int64) float64 {
	if count < t.CellDivisionEnd {
		return 0
	}
	span := t.SquidTransformation - t.CellDivisionEnd
	if span <= 0 || count >= t.SquidTransformation {
		return 1
	}
	return clamp01(float64(count-t.CellDivisionEnd) / float64(span))
}

// BackgroundOpacity fades the backdrop in over the first half of Dividing.
func (t Thresholds) BackgroundOpacity(count int64) float64 {
	if count < t.PostEvolutionStart {
		return 0
	}
	half := (t.CellDivisionEnd - t.PostEvolutionStart) / 2
	if half <= 0 {
		return 1
	}
	return clamp01(float64(count-t.PostEvolutionStart) / float64(half))
}

func smoothstep(x float64) float64 {
	x = clamp01(x)
	return x * x * (3 - 2*x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
