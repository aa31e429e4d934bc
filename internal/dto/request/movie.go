package request

// MovieRequest is used for both create and update. Image and Landscape take
// either a base64 data URI or an existing reference; on update an empty value
// keeps the current one.
type MovieRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=100"`
	Director     string   `json:"director" validate:"required,max=100"`
	Cast         *string  `json:"cast,omitempty" validate:"omitempty,max=255"`
	Duration     int      `json:"duration" validate:"required,gt=0"`
	Description  *string  `json:"description,omitempty"`
	Image        string   `json:"image,omitempty"`
	Landscape    string   `json:"landscape,omitempty"`
	Trailer      *string  `json:"trailer,omitempty" validate:"omitempty,max=255"`
	ReleaseDate  string   `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	CategoriesID []string `json:"categoriesId" validate:"unique,dive,uuid"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
