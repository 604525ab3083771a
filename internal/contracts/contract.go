package contracts

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// RawRecord is a contract as decoded from the backend's JSON.
type RawRecord map[string]any

// Wire field names of the contracts collection.
const (
	FieldID               = "id"
	FieldOwnerUserID      = "usuario_id"
	FieldTenantFirstName  = "inquilinoNombre"
	FieldTenantLastName   = "inquilinoApellido"
	FieldTenantNationalID = "inquilinoDni"
	FieldTenantAddress    = "inquilinoDireccion"
	FieldOwnerFirstName   = "propietarioNombre"
	FieldOwnerLastName    = "propietarioApellido"
	FieldOwnerNationalID  = "propietarioDni"
	FieldOwnerAddress     = "propietarioDireccion"
	FieldGuarantorFirst   = "garanteNombre"
	FieldGuarantorLast    = "garanteApellido"
	FieldGuarantorID      = "garanteDni"
	FieldGuarantorPhone   = "garanteTelefono"
	FieldPropertyAddress  = "propiedadDireccion"
	FieldStartDate        = "fechaInicio"
	FieldEndDate          = "fechaFin"
	FieldMonthlyAmount    = "montoMensual"
	FieldUpdateFrequency  = "frecuenciaActualizacion"
	FieldUpdateIndex      = "indiceActualizacion"
)

// Person is a tenant or an owner.
type Person struct {
	FirstName  string
	LastName   string
	NationalID int64
	Address    string
}

// FullName joins first and last name with a single space.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Guarantor backs the tenant's obligations.
type Guarantor struct {
	FirstName  string
	LastName   string
	NationalID int64
	Phone      string
}

// Contract is a normalized rental agreement.
//
// StartDate and EndDate are YYYY-MM-DD strings, or empty when unknown.
type Contract struct {
	ID          string
	OwnerUserID string

	Tenant    Person
	Owner     Person
	Guarantor Guarantor

	PropertyAddress string
	StartDate       string
	EndDate         string

	MonthlyAmount   float64
	UpdateFrequency UpdateFrequency
	UpdateIndex     UpdateIndex
}

// New returns an empty contract carrying the form defaults:
// six-monthly adjustment by IPC.
func New() Contract {
	return Contract{UpdateFrequency: Every6Months, UpdateIndex: IndexIPC}
}

// UpdateFrequency is the rent adjustment period in months. Zero means unset.
type UpdateFrequency int

const (
	Every3Months  UpdateFrequency = 3
	Every6Months  UpdateFrequency = 6
	Every9Months  UpdateFrequency = 9
	Every12Months UpdateFrequency = 12
)

// Frequencies lists the valid adjustment periods in ascending order.
var Frequencies = []UpdateFrequency{Every3Months, Every6Months, Every9Months, Every12Months}

// Valid reports whether f is one of Frequencies.
func (f UpdateFrequency) Valid() bool {
	switch f {
	case Every3Months, Every6Months, Every9Months, Every12Months:
		return true
	}
	return false
}

// String renders the wire form, e.g. "6 meses". Unset renders empty.
func (f UpdateFrequency) String() string {
	if !f.Valid() {
		return ""
	}
	return fmt.Sprintf("%d meses", int(f))
}

// ParseUpdateFrequency reads "6 meses", "6" or a bare number.
func ParseUpdateFrequency(s string) (UpdateFrequency, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	f := UpdateFrequency(n)
	return f, f.Valid()
}

// UpdateIndex names the inflation index driving adjustments.
type UpdateIndex string

const (
	IndexIPC UpdateIndex = "IPC"
	IndexUVA UpdateIndex = "UVA"
	IndexICL UpdateIndex = "ICL"
)

// Indexes lists the valid update indexes.
var Indexes = []UpdateIndex{IndexIPC, IndexUVA, IndexICL}

func (i UpdateIndex) Valid() bool {
	switch i {
	case IndexIPC, IndexUVA, IndexICL:
		return true
	}
	return false
}

// ParseUpdateIndex is case-insensitive.
func ParseUpdateIndex(s string) (UpdateIndex, bool) {
	i := UpdateIndex(strings.ToUpper(strings.TrimSpace(s)))
	return i, i.Valid()
}
