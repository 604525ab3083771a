package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderTable writes one row per contract.
func renderTable(w io.Writer, list []contracts.Contract) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTENANT\tDNI\tPROPERTY\tEND\tAMOUNT")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			orDash(fullName(c.Tenant.FirstName, c.Tenant.LastName)),
			contracts.FormatNationalID(c.Tenant.NationalID),
			orDash(c.PropertyAddress),
			orDash(c.EndDate),
			contracts.FormatAmount(c.MonthlyAmount),
		)
	}
	return tw.Flush()
}

// renderDetail writes every field of c, numbers in es-AR form.
func renderDetail(w io.Writer, c contracts.Contract) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s:\t%s\n", label, orDash(value))
	}

	row("ID", c.ID)
	fmt.Fprintln(tw, "Tenant")
	row("  Name", fullName(c.Tenant.FirstName, c.Tenant.LastName))
	row("  DNI", contracts.FormatNationalID(c.Tenant.NationalID))
	row("  Address", c.Tenant.Address)
	fmt.Fprintln(tw, "Owner")
	row("  Name", fullName(c.Owner.FirstName, c.Owner.LastName))
	row("  DNI", contracts.FormatNationalID(c.Owner.NationalID))
	row("  Address", c.Owner.Address)
	fmt.Fprintln(tw, "Guarantor")
	row("  Name", fullName(c.Guarantor.FirstName, c.Guarantor.LastName))
	row("  DNI", contracts.FormatNationalID(c.Guarantor.NationalID))
	row("  Phone", c.Guarantor.Phone)
	row("Property", c.PropertyAddress)
	row("Start", c.StartDate)
	row("End", c.EndDate)
	row("Monthly amount", "$ "+contracts.FormatAmount(c.MonthlyAmount))
	row("Update frequency", c.UpdateFrequency.String())
	row("Update index", string(c.UpdateIndex))

	return tw.Flush()
}

func renderStats(w io.Writer, s contracts.Stats) {
	fmt.Fprintf(w, "Total contracts: %d\n", s.Total)
	fmt.Fprintf(w, "Active:          %d\n", s.Active)
	fmt.Fprintf(w, "Expired:         %d\n", s.Expired)
	fmt.Fprintf(w, "Clients:         %d\n", s.DistinctClients)
}
