package request

type MovieListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=now_showing coming_soon"`
	Genre  string `json:"genre" validate:"omitempty,max=50"`
}
