package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePath validates a local file or directory path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// S3Target is a parsed s3://bucket/prefix publishing target.
type S3Target struct {
	Bucket string
	Prefix string
}

// ParseS3Target validates and splits an s3://bucket/prefix URL.
// The prefix is optional and returned without leading or trailing slashes.
func ParseS3Target(raw string) (S3Target, error) {
	if raw == "" {
		return S3Target{}, New(ErrCodeInvalidInput, "publish target cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return S3Target{}, Wrap(ErrCodeInvalidInput, err, "invalid publish target %q", raw)
	}
	if u.Scheme != "s3" {
		return S3Target{}, New(ErrCodeInvalidInput, "publish target must use the s3:// scheme, got %q", raw)
	}
	if u.Host == "" {
		return S3Target{}, New(ErrCodeInvalidInput, "publish target is missing a bucket: %q", raw)
	}
	return S3Target{Bucket: u.Host, Prefix: strings.Trim(u.Path, "/")}, nil
}

// IsMongoURI reports whether s looks like a MongoDB connection string.
func IsMongoURI(s string) bool {
	return strings.HasPrefix(s, "mongodb://") || strings.HasPrefix(s, "mongodb+srv://")
}
