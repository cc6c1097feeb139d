package models

// StudentStatus reports whether a student is currently enrolled.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

// Student is a portal user record. Year runs 1–4; GPA is expected in [0, 4.0] but not enforced.
type Student struct {
	ID                       int           `json:"id"`
	StudentNumber            string        `json:"student_number"`
	Name                     string        `json:"name"`
	Email                    string        `json:"email"`
	Phone                    string        `json:"phone"`
	Address                  string        `json:"address"`
	Major                    string        `json:"major"`
	Year                     int           `json:"year"`
	GPA                      float64       `json:"gpa"`
	Credits                  int           `json:"credits"`
	EnrollmentDate           string        `json:"enrollment_date"`
	Status                   StudentStatus `json:"status"`
	EmergencyContactName     string        `json:"emergency_contact_name"`
	EmergencyContactPhone    string        `json:"emergency_contact_phone"`
	EmergencyContactRelation string        `json:"emergency_contact_relation"`
}
