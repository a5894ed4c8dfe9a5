package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// Capability is what a role is allowed to do with a resource kind.
type Capability string

const (
	CapRead     Capability = "read"
	CapWriteOwn Capability = "write-own"
	CapWriteAny Capability = "write-any"
)

type Resource string

const (
	ResourceCourses     Resource = "courses"
	ResourceEnrollments Resource = "enrollments"
	ResourceSubmissions Resource = "submissions"
	ResourceProgress    Resource = "progress"
)

// rolePolicy maps (role, resource) to the granted capability set.
// Admin holds write-any everywhere; write-any satisfies write-own checks.
var rolePolicy = map[UserRole]map[Resource][]Capability{
	Student: {
		ResourceCourses:     {CapRead},
		ResourceEnrollments: {CapRead, CapWriteOwn},
		ResourceSubmissions: {CapRead, CapWriteOwn},
		ResourceProgress:    {CapRead, CapWriteOwn},
	},
	Instructor: {
		ResourceCourses:     {CapRead, CapWriteOwn},
		ResourceEnrollments: {CapRead},
		ResourceSubmissions: {CapRead, CapWriteOwn},
		ResourceProgress:    {CapRead},
	},
	Admin: {
		ResourceCourses:     {CapRead, CapWriteOwn, CapWriteAny},
		ResourceEnrollments: {CapRead, CapWriteOwn, CapWriteAny},
		ResourceSubmissions: {CapRead, CapWriteOwn, CapWriteAny},
		ResourceProgress:    {CapRead, CapWriteOwn, CapWriteAny},
	},
}

// Can reports whether the role holds the capability on the resource.
// A role holding write-any passes write-own checks as well.
func (r UserRole) Can(res Resource, cap Capability) bool {
	for _, granted := range rolePolicy[r][res] {
		if granted == cap {
			return true
		}
		if cap == CapWriteOwn && granted == CapWriteAny {
			return true
		}
	}
	return false
}

// swagger:model User
type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:100;unique;not null" json:"email"`
	Password  string         `gorm:"size:100;not null" json:"-"`
	Role      UserRole       `gorm:"size:20;default:'student'" json:"role"`
	Active    bool           `gorm:"default:true" json:"active"`
	LastSeen  time.Time      `json:"lastSeen"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
