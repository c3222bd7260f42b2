package clients

import "strings"

type ClientForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	GSTIN   string `json:"gstin" validate:"omitempty,gstin"`
}

func (f ClientForm) toClient() Client {
	return Client{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
		City:    f.City,
		State:   f.State,
		Pincode: f.Pincode,
		GSTIN:   strings.ToUpper(strings.TrimSpace(f.GSTIN)),
	}
}
