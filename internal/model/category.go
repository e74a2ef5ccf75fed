package model

import "strings"

// Category groups files by their role in a media pipeline.
type Category int

const (
	CatOther Category = iota
	CatImage
	CatVideo
	CatAudio
	CatScene
	CatCache
	CatDocument
	CatArchive
)

// CategoryName returns the display name for a category.
func CategoryName(cat Category) string {
	switch cat {
	case CatImage:
		return "Images"
	case CatVideo:
		return "Video"
	case CatAudio:
		return "Audio"
	case CatScene:
		return "Scenes"
	case CatCache:
		return "Caches"
	case CatDocument:
		return "Documents"
	case CatArchive:
		return "Archives"
	default:
		return "Other"
	}
}

// CategoryColor returns the theme color for a category.
func CategoryColor(cat Category) string {
	switch cat {
	case CatImage:
		return "#E06C75" // Red
	case CatVideo:
		return "#D19A66" // Orange
	case CatAudio:
		return "#E5C07B" // Yellow
	case CatScene:
		return "#61AFEF" // Blue
	case CatCache:
		return "#C678DD" // Purple
	case CatDocument:
		return "#98C379" // Green
	case CatArchive:
		return "#56B6C2" // Cyan
	default:
		return "#ABB2BF" // Gray
	}
}

var extMap = map[string]Category{
	// Frames and stills
	".exr": CatImage, ".dpx": CatImage, ".cin": CatImage, ".tif": CatImage,
	".tiff": CatImage, ".tga": CatImage, ".png": CatImage, ".jpg": CatImage,
	".jpeg": CatImage, ".hdr": CatImage, ".psd": CatImage, ".tx": CatImage,
	".raw": CatImage, ".cr2": CatImage, ".nef": CatImage, ".dng": CatImage,
	".bmp": CatImage, ".gif": CatImage, ".webp": CatImage, ".heic": CatImage,

	".mov": CatVideo, ".mp4": CatVideo, ".mxf": CatVideo, ".avi": CatVideo,
	".mkv": CatVideo, ".r3d": CatVideo, ".braw": CatVideo, ".ari": CatVideo,
	".webm": CatVideo, ".m4v": CatVideo,

	".wav": CatAudio, ".aif": CatAudio, ".aiff": CatAudio, ".flac": CatAudio,
	".mp3": CatAudio, ".ogg": CatAudio, ".m4a": CatAudio,

	".ma": CatScene, ".mb": CatScene, ".blend": CatScene, ".hip": CatScene,
	".hipnc": CatScene, ".nk": CatScene, ".c4d": CatScene, ".max": CatScene,
	".usd": CatScene, ".usda": CatScene, ".usdc": CatScene, ".abc": CatScene,
	".fbx": CatScene, ".obj": CatScene, ".gltf": CatScene, ".glb": CatScene,

	".vdb": CatCache, ".bgeo": CatCache, ".sc": CatCache, ".sim": CatCache,
	".ptc": CatCache, ".mcx": CatCache, ".ass": CatCache, ".rib": CatCache,

	".pdf": CatDocument, ".txt": CatDocument, ".md": CatDocument,
	".csv": CatDocument, ".edl": CatDocument, ".xml": CatDocument,
	".json": CatDocument, ".yaml": CatDocument, ".yml": CatDocument,

	".zip": CatArchive, ".tar": CatArchive, ".gz": CatArchive, ".tgz": CatArchive,
	".bz2": CatArchive, ".xz": CatArchive, ".zst": CatArchive, ".7z": CatArchive,
	".rar": CatArchive,
}

// ClassifyName returns the category for a filename or a sequence pattern.
func ClassifyName(name string) Category {
	if cat, ok := extMap[Extension(name)]; ok {
		return cat
	}
	return CatOther
}

// Extension returns the lowercase extension of a filename.
func Extension(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return strings.ToLower(name[i:])
		}
		if name[i] == '/' {
			break
		}
	}
	return ""
}
