package models

import "time"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Branch struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Phone       string       `json:"phone"`
	Manager     string       `json:"manager"`
	Image       string       `json:"image,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}
