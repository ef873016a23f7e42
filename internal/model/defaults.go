package model

// Shared defaults used by the TUI and the HTTP API.
const (
	PageSize         = 10
	DefaultSourceURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"
	DefaultSkin      = "default"
	DefaultAPIAddr   = "127.0.0.1:3000"
)
