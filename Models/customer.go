package Models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:255;not null;index"`
	Email   string `json:"email" gorm:"size:255"`
	Phone   string `json:"phone" gorm:"size:50"`
	Company string `json:"company" gorm:"size:255"`
	Address string `json:"address" gorm:"size:500"`
	Notes   string `json:"notes" gorm:"type:text"`
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}
