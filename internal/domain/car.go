package domain

import "time"

// Supported car categories.
const (
	CategoryBus       = "Bus"
	CategorySedan     = "Sedan"
	CategorySUV       = "SUV"
	CategoryHatchback = "Hatchback"
)

type Car struct {
	CarID              string    `json:"id" dynamodbav:"car_id"`
	Model              string    `json:"model" dynamodbav:"model"`
	Make               int       `json:"make" dynamodbav:"make"`
	Category           string    `json:"category" dynamodbav:"category"`
	Color              string    `json:"color" dynamodbav:"color"`
	RegistrationNumber string    `json:"registrationNumber" dynamodbav:"registration_number"`
	PhotoKey           string    `json:"photo_key,omitempty" dynamodbav:"photo_key"`
	CreatedAt          time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt          time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateCarRequest struct {
	Model              string `json:"model" validate:"required,max=200"`
	Make               int    `json:"make" validate:"required,min=1885,max=3000"`
	Category           string `json:"category" validate:"required,oneof=Bus Sedan SUV Hatchback"`
	Color              string `json:"color" validate:"required,max=50"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=50"`
}

type UpdateCarRequest struct {
	Model              *string `json:"model" validate:"omitempty,max=200"`
	Make               *int    `json:"make" validate:"omitempty,min=1885,max=3000"`
	Category           *string `json:"category" validate:"omitempty,oneof=Bus Sedan SUV Hatchback"`
	Color              *string `json:"color" validate:"omitempty,max=50"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,max=50"`
}

type PaginateCarsRequest struct {
	Page  int `json:"page" validate:"omitempty,min=1"`
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

// CarPage mirrors the page envelope the frontend consumes.
type CarPage struct {
	Docs        []Car `json:"docs"`
	TotalDocs   int   `json:"totalDocs"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	HasPrevPage bool  `json:"hasPrevPage"`
	HasNextPage bool  `json:"hasNextPage"`
}
