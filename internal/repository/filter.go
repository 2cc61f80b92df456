package repository

import "gorm.io/gorm"

// OJTFilter narrows OJT-scoped queries to a department and/or program.
type OJTFilter struct {
	DepartmentID *uint
	ProgramID    *uint
}

func (f OJTFilter) IsZero() bool { return f.DepartmentID == nil && f.ProgramID == nil }

// apply joins ojt_applications → classes → programs starting from ojtColumn
// and adds the filter conditions.
func (f OJTFilter) apply(db *gorm.DB, ojtColumn string) *gorm.DB {
	if f.IsZero() {
		return db
	}
	db = db.Joins("JOIN ojt_applications flt_ojt ON flt_ojt.id = " + ojtColumn).
		Joins("JOIN classes flt_class ON flt_class.id = flt_ojt.class_id").
		Joins("JOIN programs flt_program ON flt_program.id = flt_class.program_id")
	if f.ProgramID != nil {
		db = db.Where("flt_program.id = ?", *f.ProgramID)
	}
	if f.DepartmentID != nil {
		db = db.Where("flt_program.department_id = ?", *f.DepartmentID)
	}
	return db
}
