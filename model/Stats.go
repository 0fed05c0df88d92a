package model

// Stats is the forum summary
type Stats struct {
	TotalPosts     int        `json:"totalPosts"`
	TotalReplies   int        `json:"totalReplies"`
	TotalLikes     int64      `json:"totalLikes"`
	LanguagesUsed  int        `json:"languagesUsed"`
	RecentActivity []Activity `json:"recentActivity"`
}

// Activity is a compact view of a recent post
type Activity struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}
