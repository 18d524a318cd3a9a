package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubo/chobo/internal/ledger"
	"github.com/okubo/chobo/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newEntry(date, debit, credit string, amount int64) *ledger.JournalEntry {
	return &ledger.JournalEntry{
		Nendo:         "2021",
		Date:          date,
		DebitAccount:  debit,
		DebitAmount:   amount,
		CreditAccount: credit,
		CreditAmount:  amount,
	}
}

func TestDirectory_SeededChart(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cash, err := st.Account(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, "Cash", cash.Name)
	assert.Equal(t, "A1", cash.GroupCode)
	assert.Equal(t, ledger.SideDebit, cash.Classification.Side)

	sales, err := st.Account(ctx, "401")
	require.NoError(t, err)
	assert.Equal(t, ledger.SideCredit, sales.Classification.Side)

	_, err = st.Account(ctx, "999")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	revenue, err := st.Classification(ctx, ledger.ClassRevenue)
	require.NoError(t, err)
	assert.Equal(t, ledger.SideCredit, revenue.Side)

	_, err = st.Classification(ctx, "Z")
	assert.ErrorIs(t, err, ledger.ErrClassificationNotFound)

	accounts, err := st.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, len(ledger.DefaultAccounts))
}

func TestJournal_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := newEntry("20210510", "501", "101", 5000)
	require.NoError(t, st.CreateJournal(ctx, e))
	require.NotEmpty(t, e.ID)

	got, err := st.GetJournal(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2021", got.Nendo)
	assert.Equal(t, int64(5000), got.DebitAmount)
	assert.Equal(t, int64(5000), got.CreditAmount)
	assert.False(t, got.Checked)
	assert.False(t, got.Deleted)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestJournal_UnbalancedInsertRejected(t *testing.T) {
	// The balance trigger is the last line of defense: no code path can
	// persist an unbalanced entry even when validation is bypassed.
	st := newTestStore(t)

	e := newEntry("20210510", "501", "101", 5000)
	e.CreditAmount = 4000
	err := st.CreateJournal(context.Background(), e)
	assert.Error(t, err)
}

func TestJournal_SelfReferencingInsertRejected(t *testing.T) {
	st := newTestStore(t)

	e := newEntry("20210510", "101", "101", 5000)
	err := st.CreateJournal(context.Background(), e)
	assert.Error(t, err)
}

func TestJournal_EmptyPatchAdvancesUpdatedAt(t *testing.T) {
	// An identity-only update changes no business field but always moves
	// updated_at forward.
	st := newTestStore(t)
	ctx := context.Background()

	e := newEntry("20210510", "501", "101", 5000)
	require.NoError(t, st.CreateJournal(ctx, e))

	time.Sleep(10 * time.Millisecond)

	got, err := st.UpdateJournal(ctx, e.ID, ledger.JournalPatch{})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(e.UpdatedAt), "updated_at must advance")
	assert.Equal(t, e.Nendo, got.Nendo)
	assert.Equal(t, e.Date, got.Date)
	assert.Equal(t, e.DebitAmount, got.DebitAmount)
	assert.Equal(t, e.Note, got.Note)
}

func TestJournal_PartialUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := newEntry("20210510", "501", "101", 5000)
	require.NoError(t, st.CreateJournal(ctx, e))

	note := "stationery"
	checked := true
	got, err := st.UpdateJournal(ctx, e.ID, ledger.JournalPatch{Note: &note, Checked: &checked})
	require.NoError(t, err)
	assert.Equal(t, "stationery", got.Note)
	assert.True(t, got.Checked)
	assert.Equal(t, int64(5000), got.DebitAmount, "unsupplied fields stay put")
}

func TestJournal_UpdateUnknownID(t *testing.T) {
	st := newTestStore(t)

	_, err := st.UpdateJournal(context.Background(), "no-such-id", ledger.JournalPatch{})
	assert.ErrorIs(t, err, ledger.ErrJournalNotFound)
}

func TestJournal_SearchLedgerOrderingAndFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	dates := []string{"20210612", "20210410", "20210525"}
	for _, d := range dates {
		require.NoError(t, st.CreateJournal(ctx, newEntry(d, "501", "101", 1000)))
	}
	// touches a different account pair; must not appear for 501
	require.NoError(t, st.CreateJournal(ctx, newEntry("20210501", "102", "401", 999)))

	entries, err := st.SearchLedger(ctx, ledger.LedgerFilter{AccountCode: "501"})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "20210410", entries[0].Date, "ascending by date")
	assert.Equal(t, "20210525", entries[1].Date)
	assert.Equal(t, "20210612", entries[2].Date)

	entries, err = st.SearchLedger(ctx, ledger.LedgerFilter{AccountCode: "501", Month: "05"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "20210525", entries[0].Date)

	count, err := st.CountJournal(ctx, ledger.LedgerFilter{AccountCode: "501"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestJournal_SoftDeletedExcluded(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := newEntry("20210510", "501", "101", 5000)
	require.NoError(t, st.CreateJournal(ctx, e))

	deleted := true
	_, err := st.UpdateJournal(ctx, e.ID, ledger.JournalPatch{Deleted: &deleted})
	require.NoError(t, err)

	entries, err := st.SearchLedger(ctx, ledger.LedgerFilter{AccountCode: "501"})
	require.NoError(t, err)
	assert.Empty(t, entries)

	// still fetchable by id
	got, err := st.GetJournal(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestFiscalYears(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertFiscalYear(ctx, ledger.FiscalYear{Nendo: "2020", Fixed: true}))
	require.NoError(t, st.UpsertFiscalYear(ctx, ledger.FiscalYear{Nendo: "2021"}))

	fy, err := st.GetFiscalYear(ctx, "2020")
	require.NoError(t, err)
	assert.True(t, fy.Fixed)

	_, err = st.GetFiscalYear(ctx, "1999")
	assert.ErrorIs(t, err, ledger.ErrFiscalYearNotFound)

	years, err := st.ListFiscalYears(ctx)
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Equal(t, "2021", years[0].Nendo, "newest first")

	// reopening a year via upsert
	require.NoError(t, st.UpsertFiscalYear(ctx, ledger.FiscalYear{Nendo: "2020", Fixed: false}))
	fy, err = st.GetFiscalYear(ctx, "2020")
	require.NoError(t, err)
	assert.False(t, fy.Fixed)
}
