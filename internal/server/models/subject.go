// Package models defines the entities persisted by the server.
package models

// Subject is a top-level educational subject. ID is assigned by the store.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
	Tags string `json:"tags"`
}
