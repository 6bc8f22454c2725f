package dto

type DossierResponse struct {
	Contact   ContactResponse          `json:"contact"`
	Notes     []NoteResponse           `json:"notes"`
	Profile   *DossierProfileResponse  `json:"profile"`
	Work      []WorkEntryResponse      `json:"work"`
	Education []EducationEntryResponse `json:"education"`
	Chronicle []ChronicleEntryResponse `json:"chronicle"`
	Display   DisplayResponse          `json:"display"`
	URLs      []string                 `json:"urls"`
}

type DossierProfileResponse struct {
	Origin  string          `json:"origin"`
	Profile ProfileResponse `json:"profile"`
}

type DisplayResponse struct {
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	AvatarURL   string `json:"avatar_url"`
	OpenActions int    `json:"open_actions"`
}
