package models

// Song is the only record the service stores. It maps to the songs table,
// the Redis list entries and the JSON/form bodies of /songs.
type Song struct {
	Artist    string `json:"artist" form:"artist"`
	Track     string `json:"track" form:"track"`
	Rank      int    `json:"rank" form:"rank"`
	Published string `json:"published" form:"published"`
}

// SeedSongs returns the records every store starts with.
func SeedSongs() []Song {
	return []Song{
		{Artist: "Ke$ha", Track: "Tik-Toc", Rank: 355, Published: "1/1/2009"},
		{Artist: "Gene Autry", Track: "Rudolph, the Red-Nosed Reindeer", Rank: 356, Published: "1/1/1949"},
		{Artist: "Oasis", Track: "Wonderwall", Rank: 357, Published: "1/1/1996"},
	}
}
