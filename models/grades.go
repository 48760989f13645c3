package models

// Grade is the final mark of one subject in a semester.
type Grade struct {
	Subject string  `json:"subject"`
	Code    string  `json:"code"`
	Value   float64 `json:"value"`
	Coef    float64 `json:"coef"`
	Average float64 `json:"average"` // class average
}

// GradeSheet is the list of grades of one semester.
type GradeSheet []Grade

// Average returns the coefficient-weighted mean of the sheet, or 0 when the
// sheet carries no coefficients.
func (g GradeSheet) Average() float64 {
	var sum, coefs float64
	for _, grade := range g {
		sum += grade.Value * grade.Coef
		coefs += grade.Coef
	}
	if coefs == 0 {
		return 0
	}
	return sum / coefs
}

// ScheduleCourse is one session on the weekly calendar.
type ScheduleCourse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      CourseType `json:"type"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Room      string     `json:"room"`
	Professor string     `json:"professor"`
}

// ScheduleDay groups the sessions of one calendar day.
type ScheduleDay struct {
	Date     string           `json:"date"`
	Day      string           `json:"day"`
	FullDate string           `json:"fullDate"`
	Courses  []ScheduleCourse `json:"courses"`
}
