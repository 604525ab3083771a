package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

// formField is one prompt of the contract form, bound to its wire name so
// validation errors can be reported with the same label.
type formField struct {
	wire  string
	label string
	get   func(c *contracts.Contract) string
	set   func(c *contracts.Contract, v string) error
}

func textField(wire, label string, p func(c *contracts.Contract) *string) formField {
	return formField{
		wire:  wire,
		label: label,
		get:   func(c *contracts.Contract) string { return *p(c) },
		set:   func(c *contracts.Contract, v string) error { *p(c) = v; return nil },
	}
}

func idField(wire, label string, p func(c *contracts.Contract) *int64) formField {
	get := func(c *contracts.Contract) string {
		if *p(c) == 0 {
			return ""
		}
		return strconv.FormatInt(*p(c), 10)
	}
	set := func(c *contracts.Contract, v string) error {
		if v == "" {
			*p(c) = 0
			return nil
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(v, ".", ""), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%q is not a national id", v)
		}
		*p(c) = n
		return nil
	}
	return formField{wire: wire, label: label, get: get, set: set}
}

func dateField(wire, label string, p func(c *contracts.Contract) *string) formField {
	get := func(c *contracts.Contract) string { return *p(c) }
	set := func(c *contracts.Contract, v string) error {
		if v != "" {
			if _, ok := contracts.ParseDate(v); !ok {
				return fmt.Errorf("%q is not a date (YYYY-MM-DD)", v)
			}
		}
		*p(c) = v
		return nil
	}
	return formField{wire: wire, label: label, get: get, set: set}
}

var contractForm = []formField{
	textField(contracts.FieldTenantFirstName, "Tenant first name", func(c *contracts.Contract) *string { return &c.Tenant.FirstName }),
	textField(contracts.FieldTenantLastName, "Tenant last name", func(c *contracts.Contract) *string { return &c.Tenant.LastName }),
	idField(contracts.FieldTenantNationalID, "Tenant DNI", func(c *contracts.Contract) *int64 { return &c.Tenant.NationalID }),
	textField(contracts.FieldTenantAddress, "Tenant address", func(c *contracts.Contract) *string { return &c.Tenant.Address }),

	textField(contracts.FieldOwnerFirstName, "Owner first name", func(c *contracts.Contract) *string { return &c.Owner.FirstName }),
	textField(contracts.FieldOwnerLastName, "Owner last name", func(c *contracts.Contract) *string { return &c.Owner.LastName }),
	idField(contracts.FieldOwnerNationalID, "Owner DNI", func(c *contracts.Contract) *int64 { return &c.Owner.NationalID }),
	textField(contracts.FieldOwnerAddress, "Owner address", func(c *contracts.Contract) *string { return &c.Owner.Address }),

	textField(contracts.FieldGuarantorFirst, "Guarantor first name", func(c *contracts.Contract) *string { return &c.Guarantor.FirstName }),
	textField(contracts.FieldGuarantorLast, "Guarantor last name", func(c *contracts.Contract) *string { return &c.Guarantor.LastName }),
	idField(contracts.FieldGuarantorID, "Guarantor DNI", func(c *contracts.Contract) *int64 { return &c.Guarantor.NationalID }),
	textField(contracts.FieldGuarantorPhone, "Guarantor phone", func(c *contracts.Contract) *string { return &c.Guarantor.Phone }),

	textField(contracts.FieldPropertyAddress, "Property address", func(c *contracts.Contract) *string { return &c.PropertyAddress }),
	dateField(contracts.FieldStartDate, "Start date (YYYY-MM-DD)", func(c *contracts.Contract) *string { return &c.StartDate }),
	dateField(contracts.FieldEndDate, "End date (YYYY-MM-DD)", func(c *contracts.Contract) *string { return &c.EndDate }),
	{
		wire:  contracts.FieldMonthlyAmount,
		label: "Monthly amount",
		get: func(c *contracts.Contract) string {
			if c.MonthlyAmount == 0 {
				return ""
			}
			return strconv.FormatFloat(c.MonthlyAmount, 'f', -1, 64)
		},
		set: func(c *contracts.Contract, v string) error {
			if v == "" {
				c.MonthlyAmount = 0
				return nil
			}
			s := v
			if strings.Contains(s, ",") {
				// es-AR input: "1.234,5"
				s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%q is not an amount", v)
			}
			c.MonthlyAmount = f
			return nil
		},
	},
	{
		wire:  contracts.FieldUpdateFrequency,
		label: "Update frequency (3, 6, 9 or 12 meses)",
		get:   func(c *contracts.Contract) string { return c.UpdateFrequency.String() },
		set: func(c *contracts.Contract, v string) error {
			if v == "" {
				c.UpdateFrequency = 0
				return nil
			}
			f, ok := contracts.ParseUpdateFrequency(v)
			if !ok {
				return fmt.Errorf("%q is not one of 3, 6, 9 or 12 meses", v)
			}
			c.UpdateFrequency = f
			return nil
		},
	},
	{
		wire:  contracts.FieldUpdateIndex,
		label: "Update index (IPC, UVA or ICL)",
		get:   func(c *contracts.Contract) string { return string(c.UpdateIndex) },
		set: func(c *contracts.Contract, v string) error {
			if v == "" {
				c.UpdateIndex = ""
				return nil
			}
			i, ok := contracts.ParseUpdateIndex(v)
			if !ok {
				return fmt.Errorf("%q is not one of IPC, UVA or ICL", v)
			}
			c.UpdateIndex = i
			return nil
		},
	},
}

// fieldLabel maps a wire field name to its form label.
func fieldLabel(wire string) string {
	for _, f := range contractForm {
		if f.wire == wire {
			return f.label
		}
	}
	return wire
}

// fillContract walks the form over c, asking again when an answer does not
// parse. Empty answers keep the current value and "-" clears it.
func fillContract(reader *bufio.Reader, w io.Writer, c contracts.Contract) (contracts.Contract, error) {
	for _, f := range contractForm {
		for {
			v, err := GetWithDefault(reader, f.label, f.get(&c), w)
			if err != nil {
				return contracts.Contract{}, err
			}
			if err := f.set(&c, v); err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			break
		}
	}
	return c, nil
}
