package grades

// Score attaches grade points and weighted scores to each record.
// A grade outside the scale leaves GradePoint nil; WeightedScore is set only
// when both the grade point and the credits are present.
func Score(records []CourseRecord) []ScoredRecord {
	out := make([]ScoredRecord, len(records))
	for i, rec := range records {
		sr := ScoredRecord{CourseRecord: rec}
		if p, ok := Point(rec.Grade); ok {
			gp := p
			sr.GradePoint = &gp
			if rec.Credits != nil {
				ws := p * *rec.Credits
				sr.WeightedScore = &ws
			}
		}
		out[i] = sr
	}
	return out
}
