package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Role        string   `json:"role" validate:"required,oneof=ADMIN SUPERVISOR EMPLOYEE"`
	PositionIDs []string `json:"positionIds" validate:"omitempty,dive,required"`
}

// UpdateUserRequest cambios parciales. positionIds, si viene, reemplaza el conjunto.
type UpdateUserRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Password    *string   `json:"password" validate:"omitempty,min=8"`
	Role        *string   `json:"role" validate:"omitempty,oneof=ADMIN SUPERVISOR EMPLOYEE"`
	PositionIDs *[]string `json:"positionIds" validate:"omitempty,dive,required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PositionIDs []string  `json:"positionIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
