package entity

import "time"

// Counterparty contraparte del documento: cliente, proveedor excluido o sujeto retenido.
type Counterparty struct {
	ID           string
	CompanyID    string
	Name         string
	IDType       string // CAT-022: 36 NIT, 13 DUI, ...
	IDNumber     string
	NRC          string // Número de Registro de Contribuyente
	ActivityCode string // Actividad económica (CAT-019)
	Address      string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasField indica si el campo de identidad indicado tiene valor.
func (c Counterparty) HasField(field string) bool {
	switch field {
	case "name":
		return c.Name != ""
	case "id_type":
		return c.IDType != ""
	case "id_number":
		return c.IDNumber != ""
	case "nrc":
		return c.NRC != ""
	case "activity_code":
		return c.ActivityCode != ""
	case "address":
		return c.Address != ""
	case "email":
		return c.Email != ""
	}
	return false
}
