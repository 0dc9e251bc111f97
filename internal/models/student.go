package models

import "time"

type Student struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	LastName   string    `db:"last_name" json:"lastName"`
	NationalID string    `db:"national_id" json:"nationalId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type StudentInput struct {
	Name       string `json:"name" binding:"required,min=2,max=50"`
	LastName   string `json:"lastName" binding:"required,min=2,max=50"`
	NationalID string `json:"nationalId" binding:"required,number,min=7,max=8"`
}
