package entity

import "time"

// CardType tipo de tarjeta de fidelización/pago captada en el turno.
type CardType string

const (
	CardMoeveGowBankinter           CardType = "MOEVE_GOW_BANKINTER"
	CardMastercardMoeveGowBankinter CardType = "MASTERCARD_MOEVE_GOW_BANKINTER"
	CardMoevePro                    CardType = "MOEVE_PRO"
	CardMoeveGow                    CardType = "MOEVE_GOW"
)

// CardTypes todos los tipos en orden de presentación.
var CardTypes = []CardType{
	CardMoeveGowBankinter,
	CardMastercardMoeveGowBankinter,
	CardMoevePro,
	CardMoeveGow,
}

// Valid indica si el tipo es reconocido.
func (c CardType) Valid() bool {
	for _, t := range CardTypes {
		if t == c {
			return true
		}
	}
	return false
}

// CardRecord contador de tarjetas por (usuario, puesto, tipo). Único por esa terna.
type CardRecord struct {
	ID         string
	UserID     string
	PositionID string
	CardType   CardType
	Count      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CardRecordFilter filtros de listado.
type CardRecordFilter struct {
	UserID      string
	PositionID  string
	PositionIDs []string // restringe a estos puestos si no es nil
}
