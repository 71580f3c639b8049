package utils

import "github.com/dustin/go-humanize"

// FormatFileSize formats file size in human readable format
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(size))
}
