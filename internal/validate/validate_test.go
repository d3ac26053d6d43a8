package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/validate"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1250", 1250, true},
		{" $99.99 ", 99.99, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"12.345", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := validate.Price(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestOptionalPrice(t *testing.T) {
	p, ok := validate.OptionalPrice("  ")
	assert.True(t, ok)
	assert.Nil(t, p)

	p, ok = validate.OptionalPrice("0")
	require.True(t, ok)
	assert.Equal(t, 0.0, *p)

	_, ok = validate.OptionalPrice("free")
	assert.False(t, ok)
}

func TestCondition(t *testing.T) {
	_, ok := validate.Condition("like_new")
	assert.True(t, ok)
	_, ok = validate.Condition("FIRST_HAND")
	assert.False(t, ok)
}

func TestPassword(t *testing.T) {
	assert.False(t, validate.Password("12345"))
	assert.True(t, validate.Password("123456"))
}

func TestStruct_ListingDraft(t *testing.T) {
	ok := validate.ListingDraft{SKU: "BC-FJ-001", Size: "48", Condition: "excellent", Price: 10, Images: 1}
	assert.NoError(t, validate.Struct(ok))

	bad := ok
	bad.Images = 7
	bad.Condition = "mint"
	err := validate.Struct(bad)
	var fe *validate.FieldError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.Has("images"))
	assert.True(t, fe.Has("condition"))
	assert.False(t, fe.Has("sku"))
}

func TestStruct_SignupConfirm(t *testing.T) {
	in := validate.SignupInput{Email: "a@b.co", DisplayName: "A", Password: "secret1", Confirm: "secret2"}
	err := validate.Struct(in)
	var fe *validate.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, []string{"confirm"}, fe.Fields)
}
