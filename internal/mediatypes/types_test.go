package mediatypes

import (
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want FileType
	}{
		{
			name: "JPEG image",
			ext:  ".jpg",
			want: FileTypeImage,
		},
		{
			name: "PNG image",
			ext:  ".png",
			want: FileTypeImage,
		},
		{
			name: "WebP image",
			ext:  ".webp",
			want: FileTypeImage,
		},
		{
			name: "MP4 video",
			ext:  ".mp4",
			want: FileTypeVideo,
		},
		{
			name: "WebM video",
			ext:  ".webm",
			want: FileTypeVideo,
		},
		{
			name: "Unknown extension",
			ext:  ".xyz",
			want: FileTypeOther,
		},
		{
			name: "Empty extension",
			ext:  "",
			want: FileTypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFileType(tt.ext)
			if got != tt.want {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		path string
		want FileType
	}{
		{
			name: "absolute image path",
			path: "/media/photos/sunset.PNG",
			want: FileTypeImage,
		},
		{
			name: "relative video path",
			path: "clips/demo.mp4",
			want: FileTypeVideo,
		},
		{
			name: "bare filename",
			path: "a.jpeg",
			want: FileTypeImage,
		},
		{
			name: "no extension",
			path: "/media/README",
			want: FileTypeOther,
		},
		{
			name: "uppercase extension",
			path: "/media/VIDEO.MKV",
			want: FileTypeVideo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.path); got != tt.want {
				t.Errorf("TypeOf(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsMediaFile("photo.jpg") {
		t.Error("IsMediaFile(photo.jpg) = false, want true")
	}
	if IsMediaFile("notes.txt") {
		t.Error("IsMediaFile(notes.txt) = true, want false")
	}
	if !IsVideo("clip.webm") {
		t.Error("IsVideo(clip.webm) = false, want true")
	}
	if IsVideo("photo.jpg") {
		t.Error("IsVideo(photo.jpg) = true, want false")
	}
}
