package models

// Grade is one finished course result. CourseCode loosely references a Course; nothing enforces it.
type Grade struct {
	ID         int     `json:"id"`
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Grade      string  `json:"grade"`
	Credits    int     `json:"credits"`
	Points     float64 `json:"points"`
	Semester   string  `json:"semester"`
}

// SemesterAll selects every semester.
const SemesterAll = "all"

// TranscriptTerm groups the grades of one semester.
type TranscriptTerm struct {
	Semester string  `json:"semester"`
	GPA      float64 `json:"gpa"`
	Credits  int     `json:"credits"`
	Grades   []Grade `json:"grades"`
}
