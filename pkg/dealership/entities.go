package dealership

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prices are written as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// User is a dealership customer.
type User struct {
	ID       string  `json:"userId"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Orders   []Order `json:"orders"`
}

// EntityID returns the user id.
func (u User) EntityID() string { return u.ID }

// WithID returns a copy of the user carrying id.
func (u User) WithID(id string) User {
	u.ID = id
	return u
}

// Replace returns in with the user's id.
func (u User) Replace(in User) User {
	in.ID = u.ID
	return in
}

// Brand is a car manufacturer.
type Brand struct {
	ID              string `json:"brandId"`
	Name            string `json:"name"`
	CountryOfOrigin string `json:"countryOfOrigin"`
	FoundedYear     int    `json:"foundedYear"`
	Cars            []Car  `json:"cars"`
}

// EntityID returns the brand id.
func (b Brand) EntityID() string { return b.ID }

// WithID returns a copy of the brand carrying id.
func (b Brand) WithID(id string) Brand {
	b.ID = id
	return b
}

// Replace returns in with the brand's id.
func (b Brand) Replace(in Brand) Brand {
	in.ID = b.ID
	return in
}

// Category groups cars by body style or segment.
type Category struct {
	ID          string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Cars        []Car  `json:"cars"`
}

// EntityID returns the category id.
func (c Category) EntityID() string { return c.ID }

// WithID returns a copy of the category carrying id.
func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// Replace returns in with the category's id.
func (c Category) Replace(in Category) Category {
	in.ID = c.ID
	return in
}

// Car is a vehicle offered for sale.
//
// RowVersion is owned by the server: it is issued on create and reissued on
// every update. Values sent by clients are ignored.
type Car struct {
	ID          string          `json:"carId"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	BrandID     string          `json:"brandId"`
	CategoryID  string          `json:"categoryId"`
	OrderItems  []OrderItem     `json:"orderItems"`
	RowVersion  []byte          `json:"rowVersion"`
	ImagePath   string          `json:"imagePath"`
}

// EntityID returns the car id.
func (c Car) EntityID() string { return c.ID }

// WithID returns a copy of the car carrying id.
func (c Car) WithID(id string) Car {
	c.ID = id
	return c
}

// Replace returns in with the car's id and a fresh row version.
func (c Car) Replace(in Car) Car {
	in.ID = c.ID
	in.RowVersion = newRowVersion()
	return in
}

// Init issues the first row version.
func (c Car) Init() Car {
	c.RowVersion = newRowVersion()
	return c
}

func newRowVersion() []byte {
	v := uuid.New()
	return v[:]
}

// Order collects the cars a user intends to buy. Once finalized it stays
// finalized.
type Order struct {
	ID          string      `json:"orderId"`
	UserID      string      `json:"userId"`
	IsFinalized bool        `json:"isFinalized"`
	OrderItems  []OrderItem `json:"orderItems"`
}

// EntityID returns the order id.
func (o Order) EntityID() string { return o.ID }

// WithID returns a copy of the order carrying id.
func (o Order) WithID(id string) Order {
	o.ID = id
	return o
}

// Replace returns in with the order's id. A finalized order stays finalized.
func (o Order) Replace(in Order) Order {
	in.ID = o.ID
	in.IsFinalized = o.IsFinalized || in.IsFinalized
	return in
}

// HasCar reports whether any item in the order references carID.
func (o Order) HasCar(carID string) bool {
	for _, it := range o.OrderItems {
		if it.CarID == carID {
			return true
		}
	}
	return false
}

// OrderItem joins one car to one order.
type OrderItem struct {
	ID      string `json:"orderItemId"`
	OrderID string `json:"orderId"`
	CarID   string `json:"carId"`
}

// EntityID returns the order item id.
func (i OrderItem) EntityID() string { return i.ID }

// WithID returns a copy of the order item carrying id.
func (i OrderItem) WithID(id string) OrderItem {
	i.ID = id
	return i
}

// Replace returns in with the order item's id.
func (i OrderItem) Replace(in OrderItem) OrderItem {
	in.ID = i.ID
	return in
}
