// Package model defines the records managed by the bite admin client and the
// reference API server.
package model

import "time"

// timestampLayout matches the millisecond ISO-8601 form written by browsers.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Customer is a customer record. ID is assigned by the backend and never
// changes afterwards.
type Customer struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Gender    string `json:"gender,omitempty" yaml:"gender,omitempty"`
	CreatedAt string `json:"createdAt" yaml:"created_at"`
	UpdatedAt string `json:"updatedAt" yaml:"updated_at"`
}

// RecordID returns the backend-assigned identifier.
func (c Customer) RecordID() string { return c.ID }
func (Customer) Kind() string       { return "customer" }

// Product is a catalogue record.
type Product struct {
	ID          string  `json:"id,omitempty" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Stock       int     `json:"stock" yaml:"stock"`
	TotalSold   int     `json:"totalSold" yaml:"total_sold"`
	CreatedAt   string  `json:"createdAt" yaml:"created_at"`
	UpdatedAt   string  `json:"updatedAt" yaml:"updated_at"`
}

// RecordID returns the backend-assigned identifier.
func (p Product) RecordID() string { return p.ID }
func (Product) Kind() string       { return "product" }

// ProductCategories lists the categories offered when creating a product.
var ProductCategories = []string{"electronics", "clothing", "books", "home"}

// Genders lists the values offered for the customer gender field.
var Genders = []string{"female", "male"}

// Timestamp formats t the way createdAt/updatedAt are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a createdAt/updatedAt value. Any RFC 3339 form is
// accepted.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Stamp sets both timestamps of a new record to now.
func (c *Customer) Stamp(now time.Time) {
	c.CreatedAt = Timestamp(now)
	c.UpdatedAt = c.CreatedAt
}

// Touch refreshes UpdatedAt.
func (c *Customer) Touch(now time.Time) {
	c.UpdatedAt = Timestamp(now)
}

// Stamp sets both timestamps of a new record to now and zeroes TotalSold.
func (p *Product) Stamp(now time.Time) {
	p.CreatedAt = Timestamp(now)
	p.UpdatedAt = p.CreatedAt
	p.TotalSold = 0
}

// Touch refreshes UpdatedAt.
func (p *Product) Touch(now time.Time) {
	p.UpdatedAt = Timestamp(now)
}
