package cancel_reservation

type CancelReservationRequest struct {
	CustomerPhone string `json:"customerPhone"`
}

type CancelReservationResponse struct {
	Cancelled bool `json:"cancelled"`
}
