package check_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Unavailable []string `json:"unavailable"`
}
