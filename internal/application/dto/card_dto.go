package dto

import "time"

// CardRecordRequest alta o sobrescritura de un contador de tarjetas.
type CardRecordRequest struct {
	UserID     string `json:"userId"`
	PositionID string `json:"positionId" validate:"required"`
	CardType   string `json:"cardType" validate:"required,oneof=MOEVE_GOW_BANKINTER MASTERCARD_MOEVE_GOW_BANKINTER MOEVE_PRO MOEVE_GOW"`
	Count      *int   `json:"count" validate:"required,min=0"`
}

// CardRecordQuery filtros del listado.
type CardRecordQuery struct {
	PositionID string `query:"positionId"`
	UserID     string `query:"userId"`
}

// CardRecordResponse contador persistido.
type CardRecordResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PositionID string    `json:"positionId"`
	CardType   string    `json:"cardType"`
	Count      int       `json:"count"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CardTypeTotal total por tipo de tarjeta.
type CardTypeTotal struct {
	CardType string `json:"cardType"`
	Count    int    `json:"count"`
}

// CardSummaryResponse totales por tipo sobre los registros visibles.
type CardSummaryResponse struct {
	PositionID string          `json:"positionId,omitempty"`
	Totals     []CardTypeTotal `json:"totals"`
	Total      int             `json:"total"`
}
