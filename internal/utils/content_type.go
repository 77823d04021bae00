package utils

import (
	"strings"

	"github.com/customeros/mailpdf/internal/enum"
)

func GetFileExtensionFromContentType(contentType string) string {
	// Convert content type to lowercase for consistency
	contentType = strings.ToLower(contentType)

	switch {
	case strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "svg"):
		return "svg"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "pdf"):
		return "pdf"
	case strings.Contains(contentType, "spreadsheetml"):
		return "xlsx"
	case strings.Contains(contentType, "presentationml"):
		return "pptx"
	case strings.Contains(contentType, "wordprocessingml"):
		return "docx"
	case strings.Contains(contentType, "msword"):
		return "doc"
	case strings.Contains(contentType, "text/plain"):
		return "txt"
	case strings.Contains(contentType, "html"):
		return "html"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "tiff") || strings.Contains(contentType, "tif"):
		return "tiff"
	case strings.Contains(contentType, "bmp"):
		return "bmp"
	case strings.Contains(contentType, "csv"):
		return "csv"
	case strings.Contains(contentType, "rtf"):
		return "rtf"
	default:
		return "bin"
	}
}

// GetContentTypeFromExtension maps a file extension (with or without the dot)
// to a MIME type. Unknown extensions map to application/octet-stream.
func GetContentTypeFromExtension(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")

	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	case "tif", "tiff":
		return "image/tiff"
	case "pdf":
		return "application/pdf"
	case "xlsx", "xlsm", "xltx", "xltm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "doc":
		return "application/msword"
	case "odt":
		return "application/vnd.oasis.opendocument.text"
	case "rtf":
		return "application/rtf"
	case "csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

func IsImageExtension(ext string) bool {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "png", "jpg", "jpeg", "gif", "bmp", "svg", "webp", "tif", "tiff":
		return true
	}
	return false
}

// DocumentFamilyForExtension returns which converter family handles the
// extension, or DocumentNone.
func DocumentFamilyForExtension(ext string) enum.DocumentFamily {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "xlsx", "xlsm", "xltx", "xltm", "csv":
		return enum.DocumentSpreadsheet
	case "pptx":
		return enum.DocumentPresentation
	case "docx", "doc", "odt", "rtf":
		return enum.DocumentWordProcessing
	default:
		return enum.DocumentNone
	}
}
