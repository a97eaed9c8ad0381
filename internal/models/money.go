package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is a fixed-point currency amount. Prize amounts are never handled as
// float64; all arithmetic goes through the embedded decimal value and results
// are truncated to whole cents before they are stored or returned.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal value as a Money amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString parses a decimal string such as "200" or "26.67".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

// MarshalBSONValue stores the amount as a BSON Decimal128 so the database
// keeps exact decimal values rather than binary floats.
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(m.String())
	if err != nil {
		return bsontype.Null, nil, fmt.Errorf("money %q not representable as Decimal128: %w", m.String(), err)
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue reads a BSON Decimal128 back into a Money amount.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null {
		*m = Money{}
		return nil
	}
	raw := bson.RawValue{Type: t, Value: data}
	var d128 primitive.Decimal128
	if err := raw.Unmarshal(&d128); err != nil {
		return fmt.Errorf("failed to decode money value: %w", err)
	}
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return fmt.Errorf("invalid stored money value %q: %w", d128.String(), err)
	}
	m.Decimal = d
	return nil
}
