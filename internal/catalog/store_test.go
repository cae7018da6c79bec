package catalog

import (
	"testing"
	"time"

	"carbonsouq-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing(id string) domain.Listing {
	return domain.Listing{
		ID:                   id,
		ProjectName:          "Abu Dhabi Mangrove Restoration",
		Location:             "Abu Dhabi, UAE",
		IsDomestic:           true,
		ProjectType:          domain.ProjectTypeMangrove,
		AvailableQuantity:    5000,
		UnitPrice:            decimal.RequireFromString("85.00"),
		Currency:             domain.CurrencyAED,
		VerificationStandard: "Verra VCS",
		VerificationDate:     time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpsertAndGetAll(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Upsert(validListing("CC001")))
	require.NoError(t, s.Upsert(validListing("CC002")))

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "CC001", all[0].ID)
	assert.Equal(t, "CC002", all[1].ID)
	assert.Equal(t, 2, s.Len())
}

func TestUpsertRejectsInvariantViolations(t *testing.T) {
	s := NewStore()

	l := validListing("CC001")
	l.AvailableQuantity = -1
	err := s.Upsert(l)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "available_quantity", ve.Field)

	l = validListing("CC001")
	l.UnitPrice = decimal.Zero
	require.Error(t, s.Upsert(l))

	l = validListing("CC001")
	l.Currency = "DOGE"
	require.Error(t, s.Upsert(l))

	l = validListing("")
	require.Error(t, s.Upsert(l))

	// Store unchanged after rejected writes.
	assert.Equal(t, 0, s.Len())
}

func TestUpsertReplaceKeepsPosition(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Upsert(validListing("CC001")))
	require.NoError(t, s.Upsert(validListing("CC002")))

	updated := validListing("CC001")
	updated.AvailableQuantity = 4000
	require.NoError(t, s.Upsert(updated))

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "CC001", all[0].ID)
	assert.Equal(t, int64(4000), all[0].AvailableQuantity)
}

func TestGetAllReturnsSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Upsert(validListing("CC001")))

	snap := s.GetAll()
	snap[0].ProjectName = "mutated"

	fresh, ok := s.Get("CC001")
	require.True(t, ok)
	assert.Equal(t, "Abu Dhabi Mangrove Restoration", fresh.ProjectName)
}

func TestReplaceRejectsDuplicates(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Upsert(validListing("CC009")))

	err := s.Replace([]domain.Listing{validListing("CC001"), validListing("CC001")})
	require.Error(t, err)
	// Failed replace leaves the store as it was.
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("CC009")
	assert.True(t, ok)
}

func TestReplaceSwapsContents(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Upsert(validListing("OLD1")))

	require.NoError(t, s.Replace([]domain.Listing{validListing("CC001"), validListing("CC002")}))
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("OLD1")
	assert.False(t, ok)
}
