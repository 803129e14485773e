package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative dir", "data", false},
		{"nested", "surveys/2024/", false},
		{"absolute", "/var/lib/surveys", false},
		{"parent", "../data", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1025), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestParseS3Target(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    S3Target
		wantErr bool
	}{
		{"bucket only", "s3://charts", S3Target{Bucket: "charts"}, false},
		{"bucket slash", "s3://charts/", S3Target{Bucket: "charts"}, false},
		{"prefix", "s3://charts/survey/2024/", S3Target{Bucket: "charts", Prefix: "survey/2024"}, false},

		{"empty", "", S3Target{}, true},
		{"wrong scheme", "https://charts/survey", S3Target{}, true},
		{"no bucket", "s3:///survey", S3Target{}, true},
		{"bad url", "s3://%zz", S3Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseS3Target(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseS3Target(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidInput) {
					t.Errorf("wrong error code: %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseS3Target(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsMongoURI(t *testing.T) {
	tests := map[string]bool{
		"mongodb://localhost:27017":       true,
		"mongodb+srv://cluster.example/x": true,
		"./mongodb":                       false,
		"data":                            false,
		"":                                false,
	}
	for in, want := range tests {
		if got := IsMongoURI(in); got != want {
			t.Errorf("IsMongoURI(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidChart,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeFileNotFound,
		ErrCodeMissingDataset,
		ErrCodeDecodeFailed,
		ErrCodeRenderFailed,
		ErrCodePublishFailed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
