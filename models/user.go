package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Role      Role      `gorm:"type:VARCHAR(10);default:'USER'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
