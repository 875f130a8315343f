package dto

type UsageInfo struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}
