package models

// PageSize is the fixed number of works per search result page.
const PageSize = 10

type Work struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"-"`
	Date        WorkDate `json:"date"`
	Time        DayTime  `json:"time"`
	Description string   `json:"description"`
	Minutes     int64    `json:"minutes"`
}

// SearchResult pairs the total match count with one page of matches.
type SearchResult struct {
	Total int64
	Works []Work
}
