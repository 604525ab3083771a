package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContract(name string, dni int64) contracts.Contract {
	c := contracts.New()
	c.Tenant = contracts.Person{FirstName: name, LastName: "Test", NationalID: dni}
	c.EndDate = "2026-06-30"
	c.MonthlyAmount = 250000
	return c
}

func TestList_NormalizesRecords(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{ListRet: []contracts.RawRecord{
		{"id": json.Number("1"), "inquilinoNombre": "Ana", "montoMensual": "1000", "fechaFin": "2025-01-01T00:00:00"},
	}}
	svc := NewContractService(fb, store, quiet)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", fb.LastUserID)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, 1000.0, got[0].MonthlyAmount)
	assert.Equal(t, "2025-01-01", got[0].EndDate)
}

func TestList_RemoteFailure(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{ListErr: directus.ErrUnavailable}
	svc := NewContractService(fb, store, quiet)

	_, err := svc.List(context.Background())
	var re *RemoteReadError
	require.ErrorAs(t, err, &re)
	require.ErrorIs(t, err, directus.ErrUnavailable)
}

func TestList_NotLoggedIn(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewContractService(fb, openStore(t), quiet)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
	require.Zero(t, fb.calls)
}

func TestCreate_ValidationMakesNoCalls(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)

	tests := []struct {
		name string
		c    contracts.Contract
	}{
		{"empty tenant name", newContract("", 30123456)},
		{"zero tenant dni", newContract("Ana", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{}
			svc := NewContractService(fb, store, quiet)

			_, err := svc.Create(context.Background(), tt.c)
			require.ErrorIs(t, err, contracts.ErrValidation)
			var ve *contracts.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Zero(t, fb.calls)
		})
	}
}

func TestCreate_StampsOwnerAndReturnsServerRecord(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{}
	svc := NewContractService(fb, store, quiet)

	c := newContract("Ana", 30123456)
	c.ID = "client-side"
	fb.CreateRet = contracts.ToRecord(func() contracts.Contract {
		s := c
		s.ID = "55"
		s.OwnerUserID = "u1"
		return s
	}())

	got, err := svc.Create(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, "55", got.ID)
	assert.Equal(t, "u1", got.OwnerUserID)
	assert.Equal(t, "u1", fb.LastRecord[contracts.FieldOwnerUserID])
	_, hasID := fb.LastRecord[contracts.FieldID]
	assert.False(t, hasID)
	assert.Equal(t, 1, fb.calls)
}

func TestCreate_RemoteFailure(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{CreateErr: &directus.APIError{Status: 400, Message: "bad"}}
	svc := NewContractService(fb, store, quiet)

	_, err := svc.Create(context.Background(), newContract("Ana", 1))
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "create contract", we.Op)
	assert.Contains(t, err.Error(), "bad")
}

func TestCreate_ResponseWithoutID(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{CreateRet: contracts.RawRecord{}}
	svc := NewContractService(fb, store, quiet)

	_, err := svc.Create(context.Background(), newContract("Ana", 1))
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
}

func TestUpdate_RequiresID(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewContractService(fb, openStore(t), quiet)

	_, err := svc.Update(context.Background(), "", newContract("Ana", 1))
	var ve *contracts.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []contracts.FieldError{{Field: contracts.FieldID, Message: "contract id is required"}}, ve.Fields)
	assert.Zero(t, fb.calls)
}

func TestUpdate_SendsFullDocument(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{UpdateRet: contracts.RawRecord{"inquilinoNombre": "Ana B", "inquilinoDni": json.Number("1")}}
	svc := NewContractService(fb, store, quiet)

	c := newContract("Ana B", 1)
	got, err := svc.Update(context.Background(), "42", c)
	require.NoError(t, err)

	assert.Equal(t, "42", fb.LastUpdateID)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Ana B", got.Tenant.FirstName)

	for _, f := range []string{
		contracts.FieldTenantFirstName, contracts.FieldOwnerFirstName, contracts.FieldGuarantorPhone,
		contracts.FieldStartDate, contracts.FieldEndDate, contracts.FieldMonthlyAmount,
		contracts.FieldUpdateFrequency, contracts.FieldUpdateIndex,
	} {
		_, ok := fb.LastRecord[f]
		assert.True(t, ok, "field %s missing from update payload", f)
	}
}

func TestUpdate_RemoteFailureCarriesID(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{UpdateErr: directus.ErrNotFound}
	svc := NewContractService(fb, store, quiet)

	_, err := svc.Update(context.Background(), "42", newContract("Ana", 1))
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "42", we.ID)
	assert.True(t, errors.Is(err, directus.ErrNotFound))
}

func TestRemove(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{}
	svc := NewContractService(fb, store, quiet)

	require.NoError(t, svc.Remove(context.Background(), "42"))
	assert.Equal(t, "42", fb.LastDeleteID)

	fb.DeleteErr = directus.ErrUnavailable
	err := svc.Remove(context.Background(), "43")
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "delete contract 43: backend unavailable", err.Error())
}

func TestRemove_RequiresID(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewContractService(fb, openStore(t), quiet)
	require.ErrorIs(t, svc.Remove(context.Background(), ""), contracts.ErrValidation)
	require.Zero(t, fb.calls)
}

func TestRemove_NotLoggedIn(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewContractService(fb, staticSession{}, quiet)
	require.ErrorIs(t, svc.Remove(context.Background(), "1"), ErrNotLoggedIn)
}

type staticSession struct{ s state.Session }

func (s staticSession) Session() state.Session { return s.s }
