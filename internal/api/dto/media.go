package dto

// ChatImageTempMeta 聊天图片临时登记项，清理任务据此回收未被引用的对象
type ChatImageTempMeta struct {
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}

// UploadResultDTO 图片上传结果，url 可直接作为 IMAGE 消息的 image_url
type UploadResultDTO struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
}
