package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DenominationDTO billete/moneda y cantidad contada.
type DenominationDTO struct {
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count" validate:"min=0"`
}

// CreateClosureRequest cierre de caja de un turno.
type CreateClosureRequest struct {
	PositionID    string            `json:"positionId" validate:"required"`
	Shift         string            `json:"shift" validate:"required,oneof=MORNING AFTERNOON NIGHT"`
	Date          string            `json:"date" validate:"required"`
	ExpectedTotal decimal.Decimal   `json:"expectedTotal"`
	Denominations []DenominationDTO `json:"denominations" validate:"required,min=1,dive"`
	Notes         string            `json:"notes" validate:"max=1000"`
}

// ClosureQuery filtros del listado de cierres.
type ClosureQuery struct {
	PositionID string `query:"positionId"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// ClosureResponse cierre con descuadre y clasificación.
type ClosureResponse struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	PositionID     string            `json:"positionId"`
	Shift          string            `json:"shift"`
	Date           string            `json:"date"`
	Denominations  []DenominationDTO `json:"denominations,omitempty"`
	CountedTotal   decimal.Decimal   `json:"countedTotal"`
	ExpectedTotal  decimal.Decimal   `json:"expectedTotal"`
	Difference     decimal.Decimal   `json:"difference"`
	Classification string            `json:"classification"`
	Notes          string            `json:"notes"`
	CreatedAt      time.Time         `json:"createdAt"`
}
