package httpServices

// MessageRequest is the Interakt public message API payload for a template
// message. BodyValues fills the template placeholders (the OTP code).
type MessageRequest struct {
	CountryCode string   `json:"countryCode"`
	PhoneNumber string   `json:"phoneNumber"`
	Type        string   `json:"type"`
	Template    Template `json:"template"`
}

type Template struct {
	Name         string   `json:"name"`
	LanguageCode string   `json:"languageCode"`
	BodyValues   []string `json:"bodyValues"`
}

// MessageResponse is the subset of the Interakt response the service reads
type MessageResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
