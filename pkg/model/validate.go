package model

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// validIDPattern matches safe record identifiers: alphanumeric, dots,
// underscores, hyphens. UUIDs fit.
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,253}$`)

// ValidateID checks that id is safe to use as a path parameter or store key.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if strings.ContainsAny(id, "/\\\x00\n\r") {
		return fmt.Errorf("id %q contains invalid characters", id)
	}
	if !validIDPattern.MatchString(id) {
		return fmt.Errorf("id %q is invalid (allowed: a-z A-Z 0-9 . _ - up to 253 chars)", id)
	}
	return nil
}

// ValidateCustomer checks the fields a customer form requires.
func ValidateCustomer(c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("customer email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("customer email %q is not a valid address", c.Email)
	}
	if c.Gender != "" && !contains(Genders, c.Gender) {
		return fmt.Errorf("customer gender %q is invalid (allowed: %s)", c.Gender, strings.Join(Genders, ", "))
	}
	return validateTimestamps(c.CreatedAt, c.UpdatedAt)
}

// ValidateProduct checks the fields a product form requires.
func ValidateProduct(p *Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product price must be non-negative")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("product category is required")
	}
	if p.Stock < 0 {
		return fmt.Errorf("product stock must be non-negative")
	}
	if p.TotalSold < 0 {
		return fmt.Errorf("product totalSold must be non-negative")
	}
	return validateTimestamps(p.CreatedAt, p.UpdatedAt)
}

// validateTimestamps enforces updatedAt >= createdAt when both are present.
func validateTimestamps(createdAt, updatedAt string) error {
	if createdAt == "" || updatedAt == "" {
		return nil
	}
	created, err := ParseTimestamp(createdAt)
	if err != nil {
		return fmt.Errorf("createdAt %q is not an ISO-8601 timestamp", createdAt)
	}
	updated, err := ParseTimestamp(updatedAt)
	if err != nil {
		return fmt.Errorf("updatedAt %q is not an ISO-8601 timestamp", updatedAt)
	}
	if updated.Before(created) {
		return fmt.Errorf("updatedAt %s is before createdAt %s", updatedAt, createdAt)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
