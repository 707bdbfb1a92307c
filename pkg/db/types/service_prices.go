package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ServicePrice pairs a service name with its advertised price.
type ServicePrice struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ServicePriceList persists the optional per-service price card as JSON text.
type ServicePriceList []ServicePrice

func (l *ServicePriceList) Scan(src any) error {
	if src == nil {
		*l = ServicePriceList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parseFromBytes([]byte(v))
	case []byte:
		return l.parseFromBytes(v)
	default:
		return fmt.Errorf("ServicePriceList: unsupported Scan type %T", src)
	}
}

func (l ServicePriceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]ServicePrice(l))
	if err != nil {
		return nil, fmt.Errorf("ServicePriceList: marshal: %w", err)
	}
	return string(raw), nil
}

func (l *ServicePriceList) parseFromBytes(raw []byte) error {
	if len(raw) == 0 {
		*l = ServicePriceList{}
		return nil
	}
	var out []ServicePrice
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("ServicePriceList: parse %q: %w", string(raw), err)
	}
	*l = ServicePriceList(out)
	return nil
}
