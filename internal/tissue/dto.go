package tissue

import "encoding/json"

// Envelope is the wrapper the TISSUE+ API puts around every JSON reply
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TokenResponse is the reply of the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// VideoDTO is a video as returned by /api/video/
type VideoDTO struct {
	Num          string   `json:"num"`
	Title        string   `json:"title"`
	Actors       []Actor  `json:"actors,omitempty"`
	Path         string   `json:"path,omitempty"`
	Cover        string   `json:"cover,omitempty"`
	Premiered    string   `json:"premiered,omitempty"`
	Size         int64    `json:"size,omitempty"`
	IsZh         bool     `json:"is_zh,omitempty"`
	IsUncensored bool     `json:"is_uncensored,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Actor is a performer entry of a video
type Actor struct {
	Name  string `json:"name"`
	Thumb string `json:"thumb,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// DownloadDTO is a torrent as returned by /api/download/
type DownloadDTO struct {
	Hash     string  `json:"hash"`
	Name     string  `json:"name"`
	Num      string  `json:"num,omitempty"`
	Progress float64 `json:"progress"`
	State    string  `json:"state"`
	Size     int64   `json:"size,omitempty"`
}

// VersionDTO is the reply of /api/common/version
type VersionDTO struct {
	Current string `json:"current"`
	Latest  string `json:"latest"`
}

// numsRequest is the body of the batch endpoints keyed by catalog number
type numsRequest struct {
	Nums []string `json:"nums"`
}

// hashesRequest is the body of the batch endpoints keyed by torrent hash
type hashesRequest struct {
	Hashes []string `json:"hashes"`
}
