package models

type Grade struct {
	ID        int64   `db:"id" json:"id"`
	StudentID int64   `db:"student_id" json:"studentId"`
	SubjectID int64   `db:"subject_id" json:"subjectId"`
	Grade1    float64 `db:"grade1" json:"grade1"`
	Grade2    float64 `db:"grade2" json:"grade2"`
	Grade3    float64 `db:"grade3" json:"grade3"`
	Average   float64 `db:"-" json:"average"`
}

// GradeRow is the list projection: a grade joined with the student and
// subject it belongs to.
type GradeRow struct {
	ID              int64   `db:"id" json:"id"`
	StudentID       int64   `db:"student_id" json:"studentId"`
	StudentName     string  `db:"student_name" json:"studentName"`
	StudentLastName string  `db:"student_last_name" json:"studentLastName"`
	SubjectID       int64   `db:"subject_id" json:"subjectId"`
	SubjectName     string  `db:"subject_name" json:"subjectName"`
	Grade1          float64 `db:"grade1" json:"grade1"`
	Grade2          float64 `db:"grade2" json:"grade2"`
	Grade3          float64 `db:"grade3" json:"grade3"`
	Average         float64 `db:"-" json:"average"`
}

type GradeInput struct {
	StudentID int64    `json:"studentId" binding:"required,gte=1"`
	SubjectID int64    `json:"subjectId" binding:"required,gte=1"`
	Grade1    *float64 `json:"grade1" binding:"required,gte=0,lte=10"`
	Grade2    *float64 `json:"grade2" binding:"required,gte=0,lte=10"`
	Grade3    *float64 `json:"grade3" binding:"required,gte=0,lte=10"`
}

// GradeUpdateInput changes the three components of an existing grade
// row. The student/subject pair is fixed at creation.
type GradeUpdateInput struct {
	Grade1 *float64 `json:"grade1" binding:"required,gte=0,lte=10"`
	Grade2 *float64 `json:"grade2" binding:"required,gte=0,lte=10"`
	Grade3 *float64 `json:"grade3" binding:"required,gte=0,lte=10"`
}

// GradeAverage returns the mean of the three grades truncated, not
// rounded, to two decimal places. The sum is scaled to thousandths and
// truncated toward zero; only representation error just below a whole
// thousandth is snapped up, so inputs with more than three decimals
// still truncate.
func GradeAverage(g1, g2, g3 float64) float64 {
	scaled := (g1 + g2 + g3) * 1000
	milli := int64(scaled)
	if float64(milli+1)-scaled < 1e-6 {
		milli++
	}
	return float64(milli/30) / 100
}
