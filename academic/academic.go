// Package academic wraps the academic structure endpoints: establishments,
// classes, modules, subjects, semesters, rooms and enrollment.
package academic

type StudentStatus string

const (
	StudentEnrolled  StudentStatus = "INSCRIT"
	StudentGraduated StudentStatus = "DIPLOME"
	StudentDropped   StudentStatus = "ABANDON"
)

type Establishment struct {
	ID                 int64  `json:"id,omitempty"`
	Name               string `json:"name"`
	Code               string `json:"code,omitempty"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	Website            string `json:"website,omitempty"`
	LogoURL            string `json:"logoUrl,omitempty"`
	AcademicParameters string `json:"academicParameters,omitempty"`
	AcademicYears      string `json:"academicYears,omitempty"`
}

type Class struct {
	ID              int64  `json:"id,omitempty"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	AcademicYear    string `json:"academicYear,omitempty"`
	MaxCapacity     int    `json:"maxCapacity,omitempty"`
	Type            string `json:"type,omitempty"`
	ParentClassID   int64  `json:"parentClasseId,omitempty"`
	ParentClassName string `json:"parentClasseName,omitempty"`
	ResponsibleID   int64  `json:"responsibleId,omitempty"`
	ResponsibleName string `json:"responsibleName,omitempty"`
	DepartmentID    int64  `json:"departmentId,omitempty"`
	DepartmentName  string `json:"departmentName,omitempty"`
}

type Module struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	Credits      float64   `json:"credits"`
	ClassID      int64     `json:"classeId,omitempty"`
	ClassName    string    `json:"classeName,omitempty"`
	SemesterID   int64     `json:"semesterId,omitempty"`
	SemesterName string    `json:"semesterName,omitempty"`
	Subjects     []Subject `json:"subjects,omitempty"`
}

type Subject struct {
	ID              int64   `json:"id,omitempty"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	HoursCM         float64 `json:"hoursCM,omitempty"`
	HoursTD         float64 `json:"hoursTD,omitempty"`
	HoursTP         float64 `json:"hoursTP,omitempty"`
	Credits         float64 `json:"credits,omitempty"`
	CoefficientCC   float64 `json:"coefficientCC,omitempty"`
	CoefficientExam float64 `json:"coefficientExam,omitempty"`
	ModuleID        int64   `json:"moduleId,omitempty"`
	ModuleName      string  `json:"moduleName,omitempty"`
	TeacherID       int64   `json:"teacherId,omitempty"`
	TeacherName     string  `json:"teacherName,omitempty"`
	SemesterID      int64   `json:"semesterId,omitempty"`
	SemesterName    string  `json:"semesterName,omitempty"`
}

type Semester struct {
	ID                int64  `json:"id,omitempty"`
	Name              string `json:"name"`
	AcademicYear      string `json:"academicYear,omitempty"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	ExamStartDate     string `json:"examStartDate,omitempty"`
	ExamEndDate       string `json:"examEndDate,omitempty"`
	VacationStartDate string `json:"vacationStartDate,omitempty"`
	VacationEndDate   string `json:"vacationEndDate,omitempty"`
	Active            bool   `json:"active"`
}

// Student is the projection returned for the students of a class
type Student struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	ClassID       int64         `json:"classeId,omitempty"`
	ClassName     string        `json:"classeName,omitempty"`
	StudentNumber string        `json:"studentNumber"`
	BirthDate     string        `json:"birthDate,omitempty"`
	Nationality   string        `json:"nationality,omitempty"`
	Status        StudentStatus `json:"status"`
}

// Room field names follow the backend's French schema
type Room struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"nom"`
	Building  string `json:"batiment,omitempty"`
	Capacity  int    `json:"capacite"`
	Type      string `json:"type,omitempty"`
	Projector bool   `json:"projecteur"`
	Computers bool   `json:"ordinateurs"`
}
