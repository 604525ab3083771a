// Package contracts keeps the last fetched contract list of each user in the
// local state database, so the list can be shown while the backend is
// unreachable.
//
// Rows hold the wire form of a contract (see contracts.ToRecord in the model
// package) and are normalized again on read. The position column preserves
// the order in which the backend returned them.
//
// Typical usage:
//
//	repo := contracts.NewSQLiteRepository(db)
//	_ = repo.ReplaceAll(ctx, userID, list)
//	list, _ := repo.ListByUser(ctx, userID)
package contracts
