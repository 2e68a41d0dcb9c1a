package domain

// AdminProfile is the administrator dashboard profile.
type AdminProfile struct {
	FullName           string `json:"fullName" validate:"required"`
	FullSupervisorName string `json:"fullSupervisorName"`
	Email              string `json:"email" validate:"required,email"`
	PhoneNumber        string `json:"phoneNumber" validate:"required"`
	JobTitle           string `json:"jobTitle"`
	DivisionName       string `json:"divisionName"`
}

// ContractorProfile is the contractor dashboard profile. INN, KPP and
// phone formats are checked by the backend, not here.
type ContractorProfile struct {
	IdentificationNumber  string `json:"identificationNumber"`
	ContractorName        string `json:"contractorName" validate:"required"`
	ContractorFullName    string `json:"contractorFullName"`
	ContractorDescription string `json:"contractorDescription"`
	Email                 string `json:"email" validate:"required,email"`
	PhoneNumber           string `json:"phoneNumber" validate:"required"`
	Kpp                   string `json:"kpp"`
	Inn                   string `json:"inn" validate:"required"`
	FoundedAt             string `json:"foundedAt"`
	Address               string `json:"address"`
	TaxForm               string `json:"taxForm"`
	OkvedCode             string `json:"okvedCode"`
}
