package entity

// Province provincia tal como la expone el backend.
type Province struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// District distrito; Province viene embebida cuando el backend la incluye.
type District struct {
	ID       int64     `json:"id,omitempty"`
	Name     string    `json:"name"`
	Province *Province `json:"province,omitempty"`
}

// Facility centro de salud (hospital o clínica) registrado en el backend.
// Los códigos DATIM identifican el sitio en los reportes nacionales.
type Facility struct {
	ID              int64     `json:"id,omitempty"`
	Province        *Province `json:"province,omitempty"`
	District        *District `json:"district,omitempty"`
	ProvinceName    string    `json:"provinceName,omitempty"`
	DistrictName    string    `json:"districtName,omitempty"`
	RecencyDistrict string    `json:"recencyDistrict,omitempty"`
	Name            string    `json:"name"`
	DatimSiteName   string    `json:"datimSiteName,omitempty"`
	DatimOrgID      string    `json:"datimOrgId,omitempty"`
	FacilityID      string    `json:"facilityId,omitempty"`
	ProvinceCode    string    `json:"provinceCode,omitempty"`
	DistrictCode    string    `json:"districtCode,omitempty"`
	EHRVersion      string    `json:"ehrVersion,omitempty"`
	Activation      string    `json:"activation,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
}
