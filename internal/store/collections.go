package store

// 集合名即数据目录下的文件名（加 .json 后缀）
const (
	Users        = "users"
	Accounts     = "accounts"
	Sessions     = "sessions"
	QuizSets     = "quiz-sets"
	QuizAttempts = "quiz-attempts"
	UsageLogs    = "usage-logs"
	MonthlyUsage = "monthly-usage"
)
