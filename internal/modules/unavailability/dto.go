package unavailability

type CreateRequest struct {
	Date   string `json:"date" binding:"required,isodate"`
	Reason string `json:"reason" binding:"max=500"`
}

type ListQuery struct {
	From string `form:"from" binding:"omitempty,isodate"`
	To   string `form:"to" binding:"omitempty,isodate"`
}
