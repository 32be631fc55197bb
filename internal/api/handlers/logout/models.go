package logout

// LogoutResponse HTTP response model
type LogoutResponse struct {
	Success bool `json:"success"`
}
