package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindStaff   = "staff"
	KindStudent = "student"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	FullName       string         `gorm:"column:full_name;type:varchar(255);not null"`
	Email          string         `gorm:"column:email;type:varchar(255)"`
	EmployeeNumber string         `gorm:"column:employee_number;type:varchar(50)"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}

type Student struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	FullName      string         `gorm:"column:full_name;type:varchar(255);not null"`
	ClassName     string         `gorm:"column:class_name;type:varchar(100)"`
	GuardianEmail string         `gorm:"column:guardian_email;type:varchar(255)"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Student) TableName() string {
	return "students"
}

// Person is the kind-agnostic view the rest of the system consumes.
type Person struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Kind      string
	Name      string
	// employee number for staff, class for students
	Label string
}

func (e Employee) toPerson() Person {
	return Person{ID: e.ID, CompanyID: e.CompanyID, Kind: KindStaff, Name: e.FullName, Label: e.EmployeeNumber}
}

func (s Student) toPerson() Person {
	return Person{ID: s.ID, CompanyID: s.CompanyID, Kind: KindStudent, Name: s.FullName, Label: s.ClassName}
}
