package request

type CustomTokenRequest struct {
	LineUserID string `json:"lineUserId"`
}
