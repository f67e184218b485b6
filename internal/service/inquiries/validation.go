package inquiries

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// Алиасы тегов validator. Ограничения берутся из domain, поэтому теги моделей
// не дублируют числа.
const (
	tagInquiryGuests  = "inquiry_guests"
	tagInquiryMessage = "inquiry_message"
	tagOwnerResponse  = "owner_response"
	tagResponseStatus = "response_status"
)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterAlias(tagInquiryGuests, fmt.Sprintf("gte=%d,lte=%d", domain.MinInquiryGuests, domain.MaxInquiryGuests))
	v.RegisterAlias(tagInquiryMessage, fmt.Sprintf("max=%d", domain.MaxInquiryMessageLength))
	v.RegisterAlias(tagOwnerResponse, fmt.Sprintf("max=%d", domain.MaxOwnerResponseLength))

	statuses := make([]string, 0, len(domain.ResponseStatuses))
	for _, status := range domain.ResponseStatuses {
		statuses = append(statuses, string(status))
	}
	v.RegisterAlias(tagResponseStatus, "oneof="+strings.Join(statuses, " "))

	return v
}
