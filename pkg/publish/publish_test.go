package publish

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/pipeline"
)

func init() {
	retryDelay = time.Millisecond
}

type put struct {
	bucket, key, contentType string
	body                     string
}

type fakeS3 struct {
	mu    sync.Mutex
	puts  []put
	fail  map[string][]error
	calls map[string]int
	meta  []map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Key)
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	n := f.calls[key]
	f.calls[key]++
	if errs := f.fail[key]; n < len(errs) && errs[n] != nil {
		return nil, errs[n]
	}
	body, _ := io.ReadAll(in.Body)
	f.meta = append(f.meta, in.Metadata)
	f.puts = append(f.puts, put{
		bucket:      aws.ToString(in.Bucket),
		key:         key,
		contentType: aws.ToString(in.ContentType),
		body:        string(body),
	})
	return &s3.PutObjectOutput{}, nil
}

type statusError struct{ code int }

func (e statusError) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e statusError) HTTPStatusCode() int { return e.code }

func testResult() *pipeline.Result {
	return &pipeline.Result{
		RunID: "run-1",
		Artifacts: map[string][]byte{
			"orgs/svg":  []byte("<svg/>"),
			"roles/png": []byte("png"),
			"roles/svg": []byte("<svg></svg>"),
		},
	}
}

func TestPublish(t *testing.T) {
	client := &fakeS3{}
	p := &S3Publisher{Client: client, Bucket: "charts", Prefix: "survey/2024"}

	objects, err := p.Publish(context.Background(), testResult())
	if err != nil {
		t.Fatal(err)
	}

	want := []put{
		{"charts", "survey/2024/run-1/roles.svg", "image/svg+xml", "<svg></svg>"},
		{"charts", "survey/2024/run-1/roles.png", "image/png", "png"},
		{"charts", "survey/2024/run-1/orgs.svg", "image/svg+xml", "<svg/>"},
	}
	if !slices.Equal(client.puts, want) {
		t.Errorf("puts = %+v\nwant %+v", client.puts, want)
	}
	if len(objects) != 3 || objects[0].Size != len("<svg></svg>") {
		t.Errorf("objects = %+v", objects)
	}
	if got := objects[2].URL("charts"); got != "s3://charts/survey/2024/run-1/orgs.svg" {
		t.Errorf("URL = %q", got)
	}
}

func TestPublishTagsGenerator(t *testing.T) {
	client := &fakeS3{}
	p := &S3Publisher{Client: client, Bucket: "b"}

	if _, err := p.Publish(context.Background(), testResult()); err != nil {
		t.Fatal(err)
	}
	if len(client.meta) != 3 {
		t.Fatalf("uploads = %d, want 3", len(client.meta))
	}
	for i, m := range client.meta {
		if got := m["generator"]; !strings.HasPrefix(got, "surveycharts/") {
			t.Errorf("upload %d generator = %q", i, got)
		}
	}
}

func TestKeyWithoutPrefix(t *testing.T) {
	p := &S3Publisher{Bucket: "b"}
	if got := p.Key("abc", "orgs", "json"); got != "abc/orgs.json" {
		t.Errorf("Key = %q", got)
	}
}

func TestPublishRetriesTransientErrors(t *testing.T) {
	client := &fakeS3{fail: map[string][]error{
		"run-1/orgs.svg": {statusError{503}, statusError{429}},
	}}
	p := &S3Publisher{Client: client, Bucket: "b"}

	if _, err := p.Publish(context.Background(), testResult()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.calls["run-1/orgs.svg"] != 3 {
		t.Errorf("attempts = %d, want 3", client.calls["run-1/orgs.svg"])
	}
}

type uploadRecorder struct {
	observability.NoopPublishHooks
	mu   sync.Mutex
	errs []error
}

func (u *uploadRecorder) OnUpload(_ context.Context, _, _ string, _ int, _ time.Duration, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errs = append(u.errs, err)
}

func TestPublishStopsOnPermanentError(t *testing.T) {
	hooks := &uploadRecorder{}
	observability.SetPublishHooks(hooks)
	t.Cleanup(observability.Reset)

	client := &fakeS3{fail: map[string][]error{
		"run-1/roles.png": {statusError{403}},
	}}
	p := &S3Publisher{Client: client, Bucket: "b"}

	objects, err := p.Publish(context.Background(), testResult())
	if !errors.Is(err, errors.ErrCodePublishFailed) {
		t.Fatalf("error = %v, want PUBLISH_FAILED", err)
	}
	if len(objects) != 1 || objects[0].Name != "roles/svg" {
		t.Errorf("objects before failure = %+v", objects)
	}
	if client.calls["run-1/roles.png"] != 1 {
		t.Errorf("permanent error retried %d times", client.calls["run-1/roles.png"])
	}
	if len(hooks.errs) != 2 || hooks.errs[0] != nil || hooks.errs[1] == nil {
		t.Errorf("upload hooks = %v", hooks.errs)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return Retryable(fmt.Errorf("flaky"))
	})
	if err == nil || calls != 3 {
		t.Errorf("calls = %d, err = %v", calls, err)
	}
	if !IsRetryable(err) {
		t.Error("last error should stay retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := RetryWithBackoff(ctx, func() error {
		cancel()
		return Retryable(fmt.Errorf("flaky"))
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewS3(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	p, err := NewS3(context.Background(), "s3://charts/out/", config.PublishConfig{
		Region:   "eu-central-1",
		Endpoint: "http://localhost:9000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Bucket != "charts" || p.Prefix != "out" {
		t.Errorf("bucket=%q prefix=%q", p.Bucket, p.Prefix)
	}

	if _, err := NewS3(context.Background(), "gs://charts", config.PublishConfig{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("non-s3 target: %v", err)
	}
}
