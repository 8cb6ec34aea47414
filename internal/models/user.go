package models

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
	IsActive bool   `json:"isActive"`
}
