package settings

import "strings"

// CompanySettings is the single row describing the issuing business.
type CompanySettings struct {
	ID                 int64  `json:"id"`
	CompanyName        string `json:"company_name"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	Pincode            string `json:"pincode"`
	GSTIN              string `json:"gstin"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	LogoPath           string `json:"logo_path"`
	TermsAndConditions string `json:"terms_and_conditions"`
	BankingDetails     string `json:"banking_details"`
}

// SettingsForm is the body of PUT /api/settings. company_name is required;
// any other field left out keeps its stored value.
type SettingsForm struct {
	CompanyName        string  `json:"company_name" validate:"required"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	Pincode            *string `json:"pincode"`
	GSTIN              *string `json:"gstin" validate:"omitempty,gstin"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	LogoPath           *string `json:"logo_path"`
	TermsAndConditions *string `json:"terms_and_conditions"`
	BankingDetails     *string `json:"banking_details"`
}

// apply overlays the fields present in f onto cs.
func (f SettingsForm) apply(cs CompanySettings) CompanySettings {
	cs.CompanyName = f.CompanyName
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cs.Address, f.Address)
	set(&cs.City, f.City)
	set(&cs.State, f.State)
	set(&cs.Pincode, f.Pincode)
	set(&cs.GSTIN, f.GSTIN)
	set(&cs.Phone, f.Phone)
	set(&cs.Email, f.Email)
	set(&cs.LogoPath, f.LogoPath)
	set(&cs.TermsAndConditions, f.TermsAndConditions)
	set(&cs.BankingDetails, f.BankingDetails)
	cs.GSTIN = strings.ToUpper(strings.TrimSpace(cs.GSTIN))
	return cs
}
