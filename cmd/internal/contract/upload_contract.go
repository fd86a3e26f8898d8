package contract

const MaxUploadFileSizeBytes = 5 * 1024 * 1024

var ValidUploadFileTypes = []string{"png", "jpg", "jpeg", "webp", "gif"}

type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
