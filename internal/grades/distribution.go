package grades

// Distribution counts each literal non-empty grade value in first-seen order.
// Grades outside the scale are counted too, with Known set to false.
// Rows with a missing grade are not counted here.
func Distribution(records []CourseRecord) []GradeCount {
	index := make(map[string]int)
	out := []GradeCount{}
	for _, rec := range records {
		if rec.Grade == "" {
			continue
		}
		i, ok := index[rec.Grade]
		if !ok {
			i = len(out)
			index[rec.Grade] = i
			out = append(out, GradeCount{Grade: rec.Grade, Known: Known(rec.Grade)})
		}
		out[i].Count++
	}
	return out
}

// GroupBySemester lists (course name, credits) per semester in row order.
func GroupBySemester(records []CourseRecord, order SemesterOrder) []SemesterCourses {
	index := make(map[string]int)
	out := []SemesterCourses{}
	for _, rec := range records {
		i, ok := index[rec.Semester]
		if !ok {
			i = len(out)
			index[rec.Semester] = i
			out = append(out, SemesterCourses{Semester: rec.Semester})
		}
		out[i].Courses = append(out[i].Courses, CourseCredits{
			CourseName: rec.CourseName,
			Credits:    rec.Credits,
		})
	}
	if order == SemesterOrderNatural {
		SortSemesters(out, func(s SemesterCourses) string { return s.Semester })
	}
	return out
}

// GroupByGrade lists course names per distinct non-empty grade, grades in
// first-seen order and courses in row order.
func GroupByGrade(records []CourseRecord) []GradeCourses {
	index := make(map[string]int)
	out := []GradeCourses{}
	for _, rec := range records {
		if rec.Grade == "" {
			continue
		}
		i, ok := index[rec.Grade]
		if !ok {
			i = len(out)
			index[rec.Grade] = i
			out = append(out, GradeCourses{Grade: rec.Grade})
		}
		out[i].Courses = append(out[i].Courses, rec.CourseName)
	}
	return out
}
