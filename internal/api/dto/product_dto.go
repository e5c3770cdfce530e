package dto

type CategoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type ProductDTO struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	Price         Money        `json:"price"`
	ImageURL      string       `json:"imageUrl"`
	Stock         int32        `json:"stock"`
	IsFeatured    bool         `json:"isFeatured"`
	BotanicalName string       `json:"botanicalName"`
	CareLevel     string       `json:"careLevel"`
	Sunlight      string       `json:"sunlight"`
	WaterNeeds    string       `json:"waterNeeds"`
	Height        string       `json:"height"`
	Category      *CategoryDTO `json:"category"`
}
