package models

import "gorm.io/gorm"

// Client represents the customer an order is billed to. The checkout wizard
// holds a working copy of these fields and writes them back on commit.
type Client struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	GivenName  string `json:"given_name" validate:"omitempty,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address" validate:"omitempty,max=500"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
