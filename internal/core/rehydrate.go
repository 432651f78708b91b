package core

import "time"

// Rehydration factories rebuild objects from already-persisted state. They
// bypass validation on purpose: the values were validated when first
// constructed, and storage must be able to round-trip them unchanged. Only
// the storage layer may call these; user-driven construction always goes
// through the validating constructors.

// RehydrateMoney rebuilds a Money from stored cents and currency.
func RehydrateMoney(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

// RehydrateEmail rebuilds an Email from its stored normalized value.
func RehydrateEmail(value string) Email {
	return Email{value: value}
}

// RehydrateHashedPassword rebuilds a HashedPassword from stored components.
func RehydrateHashedPassword(hash, salt string) HashedPassword {
	return HashedPassword{hash: hash, salt: salt}
}

// RehydrateCategory rebuilds a Category row.
func RehydrateCategory(id string, createdAt time.Time, updatedAt *time.Time, name, description, userID string) *Category {
	return &Category{
		Entity:      Entity{id: id, createdAt: createdAt, updatedAt: updatedAt},
		name:        name,
		description: description,
		userID:      userID,
	}
}

// RehydrateUser rebuilds a User row.
func RehydrateUser(id string, createdAt time.Time, updatedAt *time.Time, name string, email Email, password HashedPassword, isActive bool, lastLoginAt *time.Time) *User {
	return &User{
		Entity:      Entity{id: id, createdAt: createdAt, updatedAt: updatedAt},
		name:        name,
		email:       email,
		password:    password,
		isActive:    isActive,
		lastLoginAt: lastLoginAt,
	}
}

// RehydrateExpense rebuilds an Expense row.
func RehydrateExpense(id string, createdAt time.Time, updatedAt *time.Time, description string, amount Money, date time.Time, userID, categoryID string, typ ExpenseType, paymentMethod PaymentMethod, notes string) *Expense {
	return &Expense{
		Entity:        Entity{id: id, createdAt: createdAt, updatedAt: updatedAt},
		description:   description,
		amount:        amount,
		date:          date,
		expenseType:   typ,
		paymentMethod: paymentMethod,
		notes:         notes,
		userID:        userID,
		categoryID:    categoryID,
	}
}
