package dto

// BookRequest defines the request body for creating or replacing a book.
// ID is accepted so replacement bodies may echo the record, but it is never
// honored: the store assigns ids on create and the path id wins on update.
type BookRequest struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	BookGenre       string `json:"bookGenre"`
	Pages           int32  `json:"pages,omitempty"`
	PublicationYear int32  `json:"publicationYear,omitempty"`
	EditorialID     int64  `json:"editorialId,omitempty"`
}

// Link is a HATEOAS entry attached to book and listing responses.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// BookResponse is the API representation of a catalog record. Timestamps are
// UTC offset instants at second precision; bookGenre carries the display name.
type BookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title,omitempty"`
	Author          string `json:"author"`
	BookGenre       string `json:"bookGenre,omitempty"`
	Pages           int32  `json:"pages,omitempty"`
	PublicationYear int32  `json:"publicationYear,omitempty"`
	EditorialID     int64  `json:"editorialId,omitempty"`
	Active          bool   `json:"active"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	Links           []Link `json:"links,omitempty"`
}

// Pagination echoes the listing window. Number follows the surface's external
// page scheme (1-based on the JSON API).
type Pagination struct {
	Number        int    `json:"number"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Timestamp     string `json:"timestamp"`
}

// BooksResponse is the paginated listing envelope.
type BooksResponse struct {
	Books      []BookResponse `json:"books"`
	Pagination Pagination     `json:"pagination"`
	Links      []Link         `json:"links"`
}
