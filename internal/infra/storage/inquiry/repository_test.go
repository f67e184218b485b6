package inquiry

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/ptr"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	testPropertyID = uuid.MustParse("0b6a2f0e-8f4c-4d1e-9a57-2c61f3e4d5a6")
	testOwnerID    = uuid.MustParse("5f1d7c2a-3b4e-4a6f-8c9d-0e1f2a3b4c5d")
	testInquiryID  = uuid.MustParse("9c8b7a6d-5e4f-4321-8abc-def012345678")
)

func TestBuildCreateQuery(t *testing.T) {
	inquiry := &domain.Inquiry{
		PropertyID:  testPropertyID,
		OwnerID:     testOwnerID,
		GuestName:   "Lina",
		GuestEmail:  "lina@example.com",
		GuestPhone:  "+962790000000",
		CheckIn:     types.MustParseDate("2025-04-10"),
		CheckOut:    types.MustParseDate("2025-04-12"),
		GuestsCount: 4,
		Status:      domain.InquiryStatusPending,
	}

	query, args, err := buildCreateQuery(inquiry)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO inquiries (property_id,owner_id,guest_id,guest_name,guest_email,guest_phone,message,"+
			"check_in_date,check_out_date,guests_count,status) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id, created_at, updated_at",
		query)
	require.Len(t, args, 11)
	assert.Equal(t, testPropertyID.String(), args[0])
	assert.Equal(t, testOwnerID.String(), args[1])
	assert.Nil(t, args[2], "анонимный гость")
	assert.Nil(t, args[6], "сообщение не задано")
	assert.Equal(t, 4, args[9])
	assert.Equal(t, "pending", args[10])
}

func TestBuildCreateQuery_GuestAndMessage(t *testing.T) {
	guestID := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	inquiry := &domain.Inquiry{
		PropertyID: testPropertyID,
		OwnerID:    testOwnerID,
		GuestID:    &guestID,
		Message:    ptr.Ptr("هل يوجد مسبح؟"),
		Status:     domain.InquiryStatusPending,
	}

	_, args, err := buildCreateQuery(inquiry)
	require.NoError(t, err)

	assert.Equal(t, guestID.String(), args[2])
	assert.Equal(t, "هل يوجد مسبح؟", args[6])
}

func TestBuildListByOwnerQuery(t *testing.T) {
	columns := strings.Join(selectColumns, ", ")

	t.Run("без фильтра статуса", func(t *testing.T) {
		query, args, err := buildListByOwnerQuery(domain.InquiryFilter{OwnerID: testOwnerID})
		require.NoError(t, err)

		assert.Equal(t, "SELECT "+columns+" FROM inquiries WHERE owner_id = $1 ORDER BY created_at DESC LIMIT 50", query)
		assert.Equal(t, []interface{}{testOwnerID.String()}, args)
	})

	t.Run("с фильтром статуса", func(t *testing.T) {
		status := domain.InquiryStatusPending
		query, args, err := buildListByOwnerQuery(domain.InquiryFilter{OwnerID: testOwnerID, Status: &status, Limit: 5})
		require.NoError(t, err)

		assert.Equal(t, "SELECT "+columns+" FROM inquiries WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 5", query)
		assert.Equal(t, []interface{}{testOwnerID.String(), "pending"}, args)
	})
}

func TestBuildRespondQuery(t *testing.T) {
	query, args, err := buildRespondQuery(testInquiryID, domain.InquiryStatusConfirmed, "أهلاً بكم")
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE inquiries SET owner_response = $1, status = $2, updated_at = NOW() WHERE id = $3 RETURNING "+
			strings.Join(selectColumns, ", "),
		query)
	assert.Equal(t, []interface{}{"أهلاً بكم", "confirmed", testInquiryID.String()}, args)
}
