package models

import "time"

// AllocationClaim marks an allocation in progress for one employee.
// The primary key makes a second concurrent claim fail.
type AllocationClaim struct {
	EmployeeKey string    `gorm:"primaryKey;size:100" json:"employeeKey"` // id в нижнем регистре
	Token       string    `gorm:"size:64;not null" json:"token"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}
