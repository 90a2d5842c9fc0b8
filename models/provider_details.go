package models

import (
	"gorm.io/gorm"
)

// ProviderDetails holds the business identity of a provider account.
// Exactly one row per provider user; deleted together with the owner.
type ProviderDetails struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex"`
	CompanyName string `json:"company_name"`
	Siret       string `json:"siret"`
	RCNumber    string `json:"rc_number"`
	// Secure URLs of the uploaded verification documents.
	KbisURL        string `json:"kbis_url"`
	AttestationURL string `json:"attestation_url"`
	InsuranceURL   string `json:"insurance_url"`
}

// OnboardingComplete reports whether all three verification documents
// have been uploaded.
func (p *ProviderDetails) OnboardingComplete() bool {
	return p.KbisURL != "" && p.AttestationURL != "" && p.InsuranceURL != ""
}
