package models

// Course is an offered class. Enrolled <= Capacity is expected but only Enroll enforces it.
type Course struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Instructor  string `json:"instructor"`
	Schedule    string `json:"schedule"`
	Room        string `json:"room"`
	Enrolled    int    `json:"enrolled"`
	Capacity    int    `json:"capacity"`
}

// CourseFilter selects a subset of the course list.
type CourseFilter string

const (
	CourseFilterAll            CourseFilter = "all"
	CourseFilterHighEnrollment CourseFilter = "high-enrollment"
	CourseFilterMorning        CourseFilter = "morning"
	CourseFilterAfternoon      CourseFilter = "afternoon"
)
