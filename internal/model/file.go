package model

import (
	"path/filepath"
	"strings"
	"time"
)

type FileType string

const (
	FileImage        FileType = "image"
	FilePDF          FileType = "pdf"
	FileDocument     FileType = "document"
	FileSpreadsheet  FileType = "spreadsheet"
	FilePresentation FileType = "presentation"
	FileArchive      FileType = "archive"
	FileCode         FileType = "code"
	FileVideo        FileType = "video"
	FileAudio        FileType = "audio"
	FileOther        FileType = "other"
)

var fileTypesByExt = map[string]FileType{
	"png": FileImage, "jpg": FileImage, "jpeg": FileImage, "gif": FileImage, "svg": FileImage, "webp": FileImage,
	"pdf": FilePDF,
	"doc": FileDocument, "docx": FileDocument, "txt": FileDocument, "md": FileDocument, "rtf": FileDocument,
	"xls": FileSpreadsheet, "xlsx": FileSpreadsheet, "csv": FileSpreadsheet,
	"ppt": FilePresentation, "pptx": FilePresentation, "key": FilePresentation,
	"zip": FileArchive, "tar": FileArchive, "gz": FileArchive, "rar": FileArchive, "7z": FileArchive,
	"js": FileCode, "ts": FileCode, "go": FileCode, "py": FileCode, "json": FileCode, "html": FileCode, "css": FileCode,
	"mp4": FileVideo, "mov": FileVideo, "webm": FileVideo,
	"mp3": FileAudio, "wav": FileAudio, "ogg": FileAudio,
}

// FileTypeOf derives the file type from the name's extension.
func FileTypeOf(name string) FileType {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if t, ok := fileTypesByExt[ext]; ok {
		return t
	}
	return FileOther
}

type File struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	TaskID     *string   `json:"task_id"`
	Name       string    `json:"name"`
	FileType   FileType  `json:"file_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
