package model

import "time"

// Roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an account that can sign in
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nome" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All returns every model managed by migrations, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Banner{},
	}
}
