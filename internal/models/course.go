package models

// Course is the normalized view of a course/program offering. Courses come in
// two legacy shapes: master session definitions and detail content entries
// joined to a master by MasterID. After resolution the distinction is
// reported through Source.
type Course struct {
	ID          string       `json:"id"`
	MasterID    string       `json:"master_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AcademyID   string       `json:"academy_id,omitempty"`
	BranchID    string       `json:"branch_id,omitempty"`
	Source      CourseSource `json:"source"`
}

// CourseSource identifies which legacy shape produced a resolved course.
type CourseSource string

const (
	CourseSourceDetail CourseSource = "detail"
	CourseSourceMaster CourseSource = "master"
)
