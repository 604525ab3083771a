package contracts

import "time"

// Stats summarizes a contract list.
type Stats struct {
	Total           int
	Active          int // ending strictly after the reference instant
	Expired         int // ended on or before it
	DistinctClients int // distinct tenant national ids
}

// Aggregate computes Stats over list as of asOf. A contract whose EndDate
// cannot be parsed is counted in Total but in neither Active nor Expired.
func Aggregate(list []Contract, asOf time.Time) Stats {
	s := Stats{Total: len(list)}
	clients := make(map[int64]struct{}, len(list))
	for _, c := range list {
		clients[c.Tenant.NationalID] = struct{}{}

		end, ok := ParseDate(c.EndDate)
		if !ok {
			continue
		}
		if end.After(asOf) {
			s.Active++
		} else {
			s.Expired++
		}
	}
	s.DistinctClients = len(clients)
	return s
}
