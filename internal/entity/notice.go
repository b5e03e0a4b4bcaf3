package entity

type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type PresenterState struct {
	Notices       []Notice `json:"notices"`
	Celebrate     bool     `json:"celebrate"`
	CloseCheckout bool     `json:"close_checkout"`
}
