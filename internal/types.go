package internal

// RawProviderRecord is one scraped row before cleaning. Every attribute
// is free text straight from a site adapter; multi-valued fields carry
// the '|' delimiter the adapters use when an element matches more than
// once.
type RawProviderRecord struct {
	Name                  *string `json:"name"`
	Provider              *string `json:"provider"`
	SpokenLanguages       *string `json:"spokenLanguages"`
	Education             *string `json:"education"`
	OtherActivities       *string `json:"otherActivities"`
	AdditionalInformation *string `json:"additionalInformation"`
	Email                 *string `json:"email"`
	PhotoURL              *string `json:"photoUrl"`
	Location              *string `json:"location"`
	Website               *string `json:"website"`
	City                  *string `json:"city"`
	Country               string  `json:"country"`
}

// EducationEntry is one structured credential extracted from the raw
// education text. Date and Issuer stay nil when extraction finds
// nothing; Title always keeps the full original entry.
type EducationEntry struct {
	Date   *string `json:"date"`
	Title  string  `json:"title"`
	Issuer *string `json:"issuer"`
}

// Location is one row of the location registry, keyed by LocationName.
type Location struct {
	LocationName   string   `json:"locationName"`
	Location       *string  `json:"location"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	Country        *string  `json:"country"`
	ZipCode        *string  `json:"zipCode"`
	PhoneNumber    *string  `json:"phoneNumber"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	HoursOperation *string  `json:"hoursOperation"`
}

// ExternalOffice is the locationName of the synthetic fallback location
// attached to records whose raw location text matches nothing in the
// registry.
const ExternalOffice = "External Office"

// DoctorRecord is the canonical cleaned output row.
type DoctorRecord struct {
	DoctorID              string           `json:"doctorId"`
	Name                  string           `json:"name"`
	Provider              *string          `json:"provider"`
	SpokenLanguages       string           `json:"spokenLanguages"`
	Email                 *string          `json:"email"`
	Education             []EducationEntry `json:"education"`
	OtherActivities       *string          `json:"otherActivities"`
	AdditionalInformation *string          `json:"additionalInformation"`
	PhotoURL              *string          `json:"photoUrl"`
	Location              *Location        `json:"location"`
	PhoneNumber           *string          `json:"phoneNumber"`
	City                  *string          `json:"city"`
	Country               string           `json:"country"`
	Website               *string          `json:"website"`
}
