package response

type CustomTokenResponse struct {
	CustomToken string `json:"customToken"`
}
