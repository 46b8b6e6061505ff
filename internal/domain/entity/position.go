package entity

// Position puesto de trabajo de la estación (pista, tienda, caja...).
type Position struct {
	ID   string
	Name string
}
