package request

type SetStockRequest struct {
	Name      string `json:"name" binding:"max=200"`
	Available *int   `json:"available" binding:"required,min=0"`
}

type DeadLettersQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

func (q DeadLettersQuery) Normalized() int {
	if q.Limit == 0 {
		return 50
	}
	return q.Limit
}
