package pushtoken

type RegisterRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}
