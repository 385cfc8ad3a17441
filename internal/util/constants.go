package util

const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
	TimeFormat  = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const MimeAudio = "audio/"

var (
	AllowedAudioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".webm", ".aac"}

	// 浏览器录音常见为 webm/ogg 容器，http.DetectContentType 会识别为 video/webm 或 application/ogg
	AllowedAudioMimeTypes = []string{MimeAudio, "video/webm", "application/ogg", "video/mp4"}
)
