package dto

// PositionResponse puesto de trabajo.
type PositionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatePositionRequest alta de puesto. Sin id se deriva del nombre.
type CreatePositionRequest struct {
	ID   string `json:"id" validate:"omitempty,max=50"`
	Name string `json:"name" validate:"required,max=100"`
}

// UpdatePositionRequest renombrado de puesto.
type UpdatePositionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
