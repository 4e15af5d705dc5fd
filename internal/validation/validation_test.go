package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSnapshot_Valid(t *testing.T) {
	v := New()

	snap := OrderSnapshot{
		Lines: []OrderLine{
			{ProductID: 1, Quantity: 3, Price: 10.38},
			{ProductID: 2, Quantity: 1, Price: 0.1},
		},
		Amount: 31.24, // 3*10.38 + 0.1
	}

	if err := v.Struct(snap); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestOrderSnapshot_InvalidAmountMismatch(t *testing.T) {
	v := New()

	snap := OrderSnapshot{
		Lines:  []OrderLine{{ProductID: 1, Quantity: 1, Price: 10.0}},
		Amount: 9.99,
	}

	if err := v.Struct(snap); err == nil {
		t.Fatal("expected validation error for amount mismatch, got nil")
	}
}

func TestOrderSnapshot_MissingLines(t *testing.T) {
	v := New()

	if err := v.Struct(OrderSnapshot{}); err == nil {
		t.Fatal("expected validation errors for an empty snapshot, got nil")
	}
}

func validCard() CardForm {
	return CardForm{
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Ada Lovelace",
		ExpiryDate: "12/29",
		CVV:        "123",
		Email:      "ada@mail.com",
	}
}

func TestCardForm(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(validCard()))

	cases := map[string]func(*CardForm){
		"short number":  func(f *CardForm) { f.CardNumber = "4242 4242 4242" },
		"blank name":    func(f *CardForm) { f.CardName = "   " },
		"bad expiry":    func(f *CardForm) { f.ExpiryDate = "1229" },
		"month 13":      func(f *CardForm) { f.ExpiryDate = "13/29" },
		"short cvv":     func(f *CardForm) { f.CVV = "12" },
		"letters cvv":   func(f *CardForm) { f.CVV = "12a" },
		"email without": func(f *CardForm) { f.Email = "ada.mail.com" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validCard()
			mutate(&f)
			assert.Error(t, v.Struct(f))
		})
	}
}

func TestCardFormatters(t *testing.T) {
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242424242424242999"))
	assert.Equal(t, "1234 56", FormatCardNumber("12-34 56"))
	assert.Equal(t, "12/3", FormatExpiryDate("123"))
	assert.Equal(t, "12/34", FormatExpiryDate("12/345"))
	assert.Equal(t, "1", FormatExpiryDate("1"))
	assert.Equal(t, "1234", SanitizeCVV("12a345"))
	assert.Equal(t, "4242", LastFour("4000 0000 0000 4242"))
}

func TestCardForm_Normalize(t *testing.T) {
	f := CardForm{CardNumber: "4242424242424242", ExpiryDate: "0130", CVV: "9x99", CardName: " A ", Email: " a@b "}
	f.Normalize()

	assert.Equal(t, "4242 4242 4242 4242", f.CardNumber)
	assert.Equal(t, "01/30", f.ExpiryDate)
	assert.Equal(t, "999", f.CVV)
	assert.Equal(t, "A", f.CardName)
	assert.Equal(t, "a@b", f.Email)
}

func TestProductQuery_Criteria(t *testing.T) {
	c := ProductQuery{Title: "shoe", CategoryID: "3", MinPrice: "20", MaxPrice: "abc"}.Criteria(500)

	assert.Equal(t, "shoe", c.TitleQuery)
	require.NotNil(t, c.CategoryID)
	assert.Equal(t, 3, *c.CategoryID)
	assert.Equal(t, 20.0, c.PriceFloor)
	assert.Equal(t, 500.0, c.PriceCeiling)
}

func TestProductQuery_AllCategoryAndSlider(t *testing.T) {
	c := ProductQuery{CategoryID: "all", RangeMin: "41", RangeMax: "188"}.Criteria(500)

	assert.Nil(t, c.CategoryID)
	assert.Equal(t, 40.0, c.PriceFloor)
	assert.Equal(t, 190.0, c.PriceCeiling)
}

func TestProductQuery_Empty(t *testing.T) {
	c := ProductQuery{CategoryID: "nope"}.Criteria(0)

	assert.Nil(t, c.CategoryID)
	assert.Equal(t, 0.0, c.PriceFloor)
	assert.Equal(t, 1000.0, c.PriceCeiling)
}

func TestRequests(t *testing.T) {
	v := New()
	zero := 0

	assert.NoError(t, v.Struct(UpdateQuantityRequest{Quantity: &zero}))
	assert.Error(t, v.Struct(UpdateQuantityRequest{}))
	assert.Error(t, v.Struct(AddCartItemRequest{}))
	assert.Error(t, v.Struct(LoginRequest{Email: "nope", Password: "x"}))
	assert.Error(t, v.Struct(ProductForm{Title: "t", Price: 0, CategoryID: 1}))
	assert.NoError(t, v.Struct(ProductUpdateForm{}))
	assert.NoError(t, v.Struct(UserUpdateForm{Name: "n"}))
}
