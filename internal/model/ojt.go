package model

import "time"

type Department struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

type Program struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `json:"name" gorm:"not null"`
	DepartmentID uint       `json:"departmentId" gorm:"not null;index"`
	Department   Department `json:"department" gorm:"foreignKey:DepartmentID"`
}

type Class struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Name      string  `json:"name" gorm:"not null"`
	ProgramID uint    `json:"programId" gorm:"not null;index"`
	Program   Program `json:"program" gorm:"foreignKey:ProgramID"`
}

type Student struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	UserID        uint   `json:"userId" gorm:"not null;uniqueIndex"`
	StudentNumber string `json:"studentNumber" gorm:"not null"`
	FirstName     string `json:"firstName" gorm:"not null"`
	LastName      string `json:"lastName" gorm:"not null"`
	Email         string `json:"email"`
}

func (s Student) FullName() string { return s.FirstName + " " + s.LastName }

type Company struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `json:"name" gorm:"not null"`
	Address string `json:"address"`
}

// OJT phases an application moves through.
const (
	OJTStatusPreOJT    = "pre-ojt"
	OJTStatusOJT       = "ojt"
	OJTStatusPostOJT   = "post-ojt"
	OJTStatusCompleted = "completed"
)

type OJTApplication struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	StudentID       uint      `json:"studentId" gorm:"not null;index"`
	Student         Student   `json:"student" gorm:"foreignKey:StudentID"`
	ClassID         uint      `json:"classId" gorm:"not null;index"`
	Class           Class     `json:"class" gorm:"foreignKey:ClassID"`
	CompanyID       *uint     `json:"companyId,omitempty" gorm:"index"`
	Company         *Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Status          string    `json:"status" gorm:"not null;default:'pre-ojt'"`
	IsActive        bool      `json:"isActive" gorm:"not null;default:true"`
	SupervisorName  string    `json:"supervisorName"`
	SupervisorEmail string    `json:"supervisorEmail"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StudentSubmission is the generic requirement-tracking row that links a
// supervisor response into the document submission flow.
type StudentSubmission struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	OJTID              uint      `json:"ojtId" gorm:"not null;index"`
	Phase              string    `json:"phase" gorm:"not null"`
	Requirement        string    `json:"requirement" gorm:"not null"`
	Status             string    `json:"status" gorm:"not null;default:'submitted'"`
	FeedbackFamily     *Family   `json:"feedbackFamily,omitempty" gorm:"type:varchar(32)"`
	FeedbackResponseID *uint     `json:"feedbackResponseId,omitempty" gorm:"index"`
	SubmittedAt        time.Time `json:"submittedAt"`
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Department{},
		&Program{},
		&Class{},
		&Student{},
		&Company{},
		&OJTApplication{},
		&FeedbackTemplate{},
		&TemplateCategory{},
		&TemplateQuestion{},
		&AccessCodeEmail{},
		&FeedbackResponse{},
		&ResponseAnswer{},
		&StudentSubmission{},
	}
}

func (OJTApplication) TableName() string { return "ojt_applications" }

func (Class) TableName() string { return "classes" }
