package model

// AudioRecording 学员上传的语音笔记，文件本身存放在对象存储中
// swagger:model AudioRecording
type AudioRecording struct {
	UUIDBase
	UserID      uint    `gorm:"index;not null" json:"userId"`
	ObjectKey   string  `gorm:"size:255;not null" json:"-"`
	Filename    string  `gorm:"size:255" json:"filename"`
	ContentType string  `gorm:"size:100" json:"contentType"`
	Size        int64   `json:"size"`
	Duration    float64 `json:"duration"` // 秒，探测失败时为 0
	RecordedOn  string  `gorm:"size:10;index" json:"recordedOn"`
	Note        string  `gorm:"type:text" json:"note"`
}

func (AudioRecording) TableName() string {
	return "audio_recordings"
}
