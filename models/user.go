package models

import "gorm.io/gorm"

// User is an administrative account able to sign in and record data.
type User struct {
	gorm.Model
	Login    string `json:"login" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	FullName string `json:"fullName"`
	Roles    []Role `json:"roles" gorm:"many2many:user_roles;"`
}

// Role groups permissions for assignment to users.
type Role struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"unique;not null"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
}

// Permission is a single named capability checked by the route middleware.
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"`
}
