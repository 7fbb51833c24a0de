package constants

// 回退存储
const (
	DefaultFallbackDBFile = "local_db.json"
)
