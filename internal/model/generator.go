package model

// PasswordRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default) and explicit false.
type PasswordRequest struct {
	Length    int   `json:"length"`
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// PasswordResponse represents a password generation response.
type PasswordResponse struct {
	Password string   `json:"password"`
	Length   int      `json:"length"`
	Classes  []string `json:"classes"`
}

// PINRequest represents a PIN generation request.
type PINRequest struct {
	Length int `json:"length"`
}

// PINResponse represents a PIN generation response.
type PINResponse struct {
	PIN    string `json:"pin"`
	Length int    `json:"length"`
}

// RandomIntResponse carries a value drawn from [Min, Max).
type RandomIntResponse struct {
	Value int `json:"value"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}
