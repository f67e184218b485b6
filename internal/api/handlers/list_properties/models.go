package list_properties

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
)

// parseQuery собирает фильтры каталога из query параметров
func parseQuery(q url.Values) (*models.ListPropertiesRequest, error) {
	req := &models.ListPropertiesRequest{}

	if city := strings.TrimSpace(q.Get("city")); city != "" {
		req.City = &city
	}

	if raw := q.Get("minPrice"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		req.MinPrice = &v
	}

	if raw := q.Get("maxPrice"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		req.MaxPrice = &v
	}

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = v
	}

	return req, nil
}
