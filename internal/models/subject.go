package models

type Subject struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
	Year int    `db:"year" json:"year"`
}

type SubjectInput struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
	Code string `json:"code" binding:"required,min=2,max=10"`
	Year int    `json:"year" binding:"required,gte=1980,lte=2050"`
}
