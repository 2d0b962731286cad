package rating

// LabelFor assigns the qualitative band for a 0-10 score
func LabelFor(score float64) ScoreLabel {
	if score >= ThresholdExcellent {
		return LabelExcellent
	}
	if score >= ThresholdGood {
		return LabelGood
	}
	if score >= ThresholdFair {
		return LabelFair
	}
	return LabelPoor
}
