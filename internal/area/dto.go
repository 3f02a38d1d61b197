package area

type CreateAreaDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateAreaDTO struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Position *int    `json:"position"`
}
