package model

// MergeCustomer copies the fields of src onto dst. The id is never copied.
// src is a full record as returned by the backend, so an empty optional
// field means it was cleared.
func MergeCustomer(dst *Customer, src Customer) {
	dst.Name = src.Name
	dst.Email = src.Email
	dst.Phone = src.Phone
	dst.Gender = src.Gender
	dst.CreatedAt = src.CreatedAt
	dst.UpdatedAt = src.UpdatedAt
}

// MergeProduct copies the fields of src onto dst. The id is never copied.
func MergeProduct(dst *Product, src Product) {
	dst.Name = src.Name
	dst.Description = src.Description
	dst.Price = src.Price
	dst.Category = src.Category
	dst.Stock = src.Stock
	dst.TotalSold = src.TotalSold
	dst.CreatedAt = src.CreatedAt
	dst.UpdatedAt = src.UpdatedAt
}
