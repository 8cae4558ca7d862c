package dto

type ClientTokenResponse struct {
	ClientToken string `json:"client_token"`
}

type PaymentDTO struct {
	Nonce          string        `json:"nonce"`
	Cart           []CartItemDTO `json:"cart"`
	IdempotencyKey string        `json:"idempotency_key"`
}
