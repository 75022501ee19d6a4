package dto

import "intellichat-be/internal/identity"

type LoginURLResponse struct {
	URL string `json:"url"`
}

type LoginResponse struct {
	User  *identity.Account `json:"user"`
	Token string            `json:"token"`
}
