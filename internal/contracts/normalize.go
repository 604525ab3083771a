package contracts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize converts a backend record into a Contract. It never fails:
// missing or malformed numbers become 0, malformed dates become "",
// unknown enum values are left unset.
func Normalize(raw RawRecord) Contract {
	c := Contract{
		ID:          toID(raw[FieldID]),
		OwnerUserID: toID(raw[FieldOwnerUserID]),
		Tenant: Person{
			FirstName:  toString(raw[FieldTenantFirstName]),
			LastName:   toString(raw[FieldTenantLastName]),
			NationalID: toInt(raw[FieldTenantNationalID]),
			Address:    toString(raw[FieldTenantAddress]),
		},
		Owner: Person{
			FirstName:  toString(raw[FieldOwnerFirstName]),
			LastName:   toString(raw[FieldOwnerLastName]),
			NationalID: toInt(raw[FieldOwnerNationalID]),
			Address:    toString(raw[FieldOwnerAddress]),
		},
		Guarantor: Guarantor{
			FirstName:  toString(raw[FieldGuarantorFirst]),
			LastName:   toString(raw[FieldGuarantorLast]),
			NationalID: toInt(raw[FieldGuarantorID]),
			Phone:      toString(raw[FieldGuarantorPhone]),
		},
		PropertyAddress: toString(raw[FieldPropertyAddress]),
		StartDate:       toDate(raw[FieldStartDate]),
		EndDate:         toDate(raw[FieldEndDate]),
		MonthlyAmount:   toFloat(raw[FieldMonthlyAmount]),
		UpdateFrequency: toFrequency(raw[FieldUpdateFrequency]),
		UpdateIndex:     toIndex(raw[FieldUpdateIndex]),
	}
	return c
}

// ToRecord renders c in wire form. The id and owner are only present when
// set; empty dates and unset enums are sent as null.
func ToRecord(c Contract) RawRecord {
	r := RawRecord{
		FieldTenantFirstName:  c.Tenant.FirstName,
		FieldTenantLastName:   c.Tenant.LastName,
		FieldTenantNationalID: c.Tenant.NationalID,
		FieldTenantAddress:    c.Tenant.Address,
		FieldOwnerFirstName:   c.Owner.FirstName,
		FieldOwnerLastName:    c.Owner.LastName,
		FieldOwnerNationalID:  c.Owner.NationalID,
		FieldOwnerAddress:     c.Owner.Address,
		FieldGuarantorFirst:   c.Guarantor.FirstName,
		FieldGuarantorLast:    c.Guarantor.LastName,
		FieldGuarantorID:      c.Guarantor.NationalID,
		FieldGuarantorPhone:   c.Guarantor.Phone,
		FieldPropertyAddress:  c.PropertyAddress,
		FieldStartDate:        nullIfEmpty(c.StartDate),
		FieldEndDate:          nullIfEmpty(c.EndDate),
		FieldMonthlyAmount:    c.MonthlyAmount,
		FieldUpdateFrequency:  nullIfEmpty(c.UpdateFrequency.String()),
		FieldUpdateIndex:      nil,
	}
	if c.UpdateIndex.Valid() {
		r[FieldUpdateIndex] = string(c.UpdateIndex)
	}
	if c.ID != "" {
		r[FieldID] = c.ID
	}
	if c.OwnerUserID != "" {
		r[FieldOwnerUserID] = c.OwnerUserID
	}
	return r
}

// NormalizeAll applies Normalize to every record.
func NormalizeAll(raws []RawRecord) []Contract {
	out := make([]Contract, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// toDate keeps the calendar part of an ISO timestamp. Anything that is not
// a real YYYY-MM-DD date after truncation becomes "".
func toDate(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	if len(s) > 10 {
		s = s[:10]
	}
	if _, ok := ParseDate(s); !ok {
		return ""
	}
	return s
}

func toFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case json.Number:
		f = parseFloat(t.String())
	case string:
		f = parseFloat(t)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	// ParseFloat accepts Go digit separators ("1_000")
	if s == "" || strings.Contains(s, "_") {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// toInt truncates toward zero; values outside the int64 range become 0.
func toInt(v any) int64 {
	if i, ok := v.(int64); ok {
		return i
	}
	f := math.Trunc(toFloat(v))
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

func toID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

func toFrequency(v any) UpdateFrequency {
	var f UpdateFrequency
	switch t := v.(type) {
	case string:
		f, _ = ParseUpdateFrequency(t)
	case json.Number:
		f, _ = ParseUpdateFrequency(t.String())
	default:
		if n := toFloat(v); n == math.Trunc(n) && v != nil {
			f = UpdateFrequency(int(n))
		}
	}
	if !f.Valid() {
		return 0
	}
	return f
}

func toIndex(v any) UpdateIndex {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	i, ok := ParseUpdateIndex(s)
	if !ok {
		return ""
	}
	return i
}
