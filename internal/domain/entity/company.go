package entity

import "time"

// CompanyProfile configuración fiscal vigente de la empresa emisora.
type CompanyProfile struct {
	ID                string
	Name              string
	NIT               string
	NRC               string
	ActivityCode      string
	EstablishmentCode string // código de establecimiento asignado por MH (4 caracteres)
	PointOfSaleCode   string // código de punto de venta (4 caracteres)
	Environment       string // "00" producción, "01" pruebas
	Address           string
	Phone             string
	Email             string
	UpdatedAt         time.Time
}
