package enums

import "fmt"

// ItemCategory describes the allowed values for the `category` column in items.
type ItemCategory string

const (
	ItemCategoryTops        ItemCategory = "tops"
	ItemCategoryBottoms     ItemCategory = "bottoms"
	ItemCategoryDresses     ItemCategory = "dresses"
	ItemCategoryOuterwear   ItemCategory = "outerwear"
	ItemCategoryAccessories ItemCategory = "accessories"
	ItemCategoryShoes       ItemCategory = "shoes"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryTops,
	ItemCategoryBottoms,
	ItemCategoryDresses,
	ItemCategoryOuterwear,
	ItemCategoryAccessories,
	ItemCategoryShoes,
	ItemCategoryOther,
}

// IsValid reports whether the value matches the canonical item category enum.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts the raw string to ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}

// ItemStatus describes the lifecycle of a listing.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusRented    ItemStatus = "rented"
	ItemStatusInactive  ItemStatus = "inactive"
)

var validItemStatuses = []ItemStatus{
	ItemStatusAvailable,
	ItemStatusRented,
	ItemStatusInactive,
}

// IsValid reports whether the value matches the canonical item status enum.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts the raw string to ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}

// PaymentMethod describes how a lender accepts payment for a listing.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodZelle  PaymentMethod = "zelle"
	PaymentMethodEither PaymentMethod = "either"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodZelle,
	PaymentMethodEither,
}

// IsValid reports whether the value matches the canonical payment method enum.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts the raw string to PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
