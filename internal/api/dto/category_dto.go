package dto

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

type UpdateCategoryDTO struct {
	Name string `json:"name"`
}
