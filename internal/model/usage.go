package model

import (
	"time"
)

// UsageLog 每次计费动作追加一条，只增不改
type UsageLog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Action       string    `json:"action"`
	PromptText   string    `json:"promptText,omitempty"`
	CostEstimate float64   `json:"costEstimate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	MonthYear    string    `json:"monthYear"`
}

// MonthlyUsage 按 (userId, monthYear) 聚合的月度计数，
// monthYear 形如 "2024-05"（UTC），新月份新建一行，旧行不清零。
type MonthlyUsage struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	MonthYear    string    `json:"monthYear"`
	TotalPrompts int       `json:"totalPrompts"`
	TotalCost    float64   `json:"totalCost"`
	LastUpdated  time.Time `json:"lastUpdated"`
}
