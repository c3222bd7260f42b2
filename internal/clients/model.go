package clients

import "time"

// Client is a billed customer.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	GSTIN     string    `json:"gstin"`
	CreatedAt time.Time `json:"created_at"`
}
