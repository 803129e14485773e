package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(ErrCodeDecodeFailed, cause, "decode %s", "yoe.json")

	if !Is(err, ErrCodeDecodeFailed) {
		t.Error("Is should match the wrapped code")
	}
	if Is(err, ErrCodeRenderFailed) {
		t.Error("Is should not match a different code")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if got := err.Error(); got != "DECODE_FAILED: decode yoe.json: boom" {
		t.Errorf("Error() = %q", got)
	}

	outer := fmt.Errorf("render: %w", err)
	if GetCode(outer) != ErrCodeDecodeFailed {
		t.Errorf("GetCode through fmt wrapping = %q", GetCode(outer))
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidChart, "unknown chart: %s", "pie")); got != "unknown chart: pie" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode of a plain error should be empty")
	}
}
