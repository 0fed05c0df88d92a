package model

// Post struct defines how post must be
type Post struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	Language  string  `json:"language"`
	Timestamp string  `json:"timestamp"`
	Likes     int64   `json:"likes"`
	Replies   []Reply `json:"replies"`
}

// Reply is a message appended to a post
type Reply struct {
	Id        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Timestamp string `json:"timestamp"`
	Likes     int64  `json:"likes"`
}

// PostBody defines how body when creating
// a new post must be
type PostBody struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Language string `json:"language"`
}

// ReplyBody defines the body of the reply route
type ReplyBody struct {
	Content  string `json:"content"`
	Author   string `json:"author"`
	Language string `json:"language"`
}

// LikeBody defines the body of the like route,
// action is either "like" or "unlike"
type LikeBody struct {
	Action string `json:"action"`
}

// Likes is the response of the like route
type Likes struct {
	Likes int64 `json:"likes"`
}

// PostQuery filters and paginates post listing
type PostQuery struct {
	Page     int
	Limit    int
	Language string
}

// Pagination describes where a page sits in the listing
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalPosts  int  `json:"totalPosts"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// PostList is the response of the listing route
type PostList struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
