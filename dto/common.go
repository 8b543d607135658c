package dto

import "carrent/response"

// PaginatedResponse is the shared shape for paginated payloads.
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// ActorResponse identifies the user behind an action in list payloads.
type ActorResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
