package util

const (
	DateFormat = "02/01/2006"
	TimeFormat = "02/01/2006 15:04"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeVideo = "video/"
	MimeImage = "image/"
	MimePDF   = "application/pdf"
	MimeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS   = "application/vnd.ms-excel"
)

var AllowedMediaExtensions = []string{
	".mp4", ".mov", ".webm",
	".png", ".jpg", ".jpeg", ".gif", ".webp",
	".pdf",
}
