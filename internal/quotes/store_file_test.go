package quotes

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRecord(id string, status Status) Record {
	return Record{
		ID:        id,
		Timestamp: time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
		Status:    status,
		CustomerDetails: CustomerDetails{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "07700 900123",
		},
		ServiceDetails: ServiceDetails{
			ServiceType:      "Regular Domestic Cleaning",
			PropertySize:     "2-bed (flat)",
			SoilingLevel:     "Medium",
			EstimatedTime:    3,
			CleanersRequired: 1,
		},
		CostDetails: CostDetails{
			LabourCost:      "69.00",
			MaterialCost:    "10.00",
			BaseCost:        "79.00",
			ExtrasBreakdown: []ExtraLine{{Name: "Oven Cleaning", Cost: "20.00"}},
			ExtrasCost:      "20.00",
			ContractorPrice: "99.00",
			Markup:          "29.70",
			FinalPrice:      "128.70",
		},
		AdditionalInfo: AdditionalInfo{SiteVisitRequired: true},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quotes.json")
	store := NewFileStore(path)

	rec := testRecord("KMI-a", StatusPending)
	require.NoError(t, store.Append(ctx, rec))

	got, err := store.FindByID(ctx, "KMI-a")
	require.NoError(t, err)
	require.Equal(t, rec, *got)
}

func TestFileStoreListEmptyWhenMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFileStoreInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))

	for _, id := range []string{"KMI-1", "KMI-2", "KMI-3"} {
		require.NoError(t, store.Append(ctx, testRecord(id, StatusPending)))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "KMI-1", records[0].ID)
	require.Equal(t, "KMI-2", records[1].ID)
	require.Equal(t, "KMI-3", records[2].ID)
}

func TestFileStoreRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))

	require.NoError(t, store.Append(ctx, testRecord("KMI-a", StatusPending)))
	err := store.Append(ctx, testRecord("KMI-a", StatusApproved))
	require.ErrorIs(t, err, ErrDuplicateID)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, StatusPending, records[0].Status)
}

func TestFileStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))

	rec := testRecord("KMI-a", StatusPending)
	require.NoError(t, store.Append(ctx, rec))

	updated, err := store.UpdateStatus(ctx, "KMI-a", StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, updated.Status)

	// Only the status changed.
	want := rec
	want.Status = StatusCompleted
	require.Equal(t, want, *updated)
}

func TestFileStoreUpdateStatusUnknownID(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))
	_, err := store.UpdateStatus(context.Background(), "KMI-missing", StatusApproved)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreUpdateStatusRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "quotes.json"))
	require.NoError(t, store.Append(ctx, testRecord("KMI-a", StatusPending)))

	_, err := store.UpdateStatus(ctx, "KMI-a", Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	got, err := store.FindByID(ctx, "KMI-a")
	require.NoError(t, err)
	require.Equal(t, StatusPending, got.Status)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quotes.json")

	store := NewFileStore(path)
	require.NoError(t, store.Append(ctx, testRecord("KMI-a", StatusPending)))
	_, err := store.UpdateStatus(ctx, "KMI-a", StatusApproved)
	require.NoError(t, err)

	reopened := NewFileStore(path)
	got, err := reopened.FindByID(ctx, "KMI-a")
	require.NoError(t, err)
	require.Equal(t, StatusApproved, got.Status)
}
