package models

// ProjectThread is the assignment of a thread to a project's palette. The
// composite primary key makes a repeated assignment a no-op.
type ProjectThread struct {
	ProjectID uint `gorm:"primaryKey;autoIncrement:false"`
	ThreadID  uint `gorm:"primaryKey;autoIncrement:false"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Thread  Thread  `gorm:"foreignKey:ThreadID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ProjectThread) TableName() string { return "project_threads" }

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Thread{},
		&Project{},
		&ProjectThread{},
	}
}
