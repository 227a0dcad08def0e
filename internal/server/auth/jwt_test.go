package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dzavadskis/minimart/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	subject := "alice"

	tok, err := GenerateToken(subject, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := SubjectFromToken(tok, secret)
	if err != nil {
		t.Fatalf("SubjectFromToken error: %v", err)
	}
	if got != subject {
		t.Fatalf("subject mismatch: got %q want %q", got, subject)
	}
}

func TestSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = SubjectFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = SubjectFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrBadSignature) {
		t.Fatalf("expected common.ErrBadSignature, got %v", err)
	}
}

func TestSubjectFromToken_TamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", tok)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload decode error: %v", err)
	}
	forged := strings.Replace(string(payload), "alice", "mallory", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = SubjectFromToken(strings.Join(parts, "."), secret)
	if !errors.Is(err, common.ErrBadSignature) {
		t.Fatalf("expected common.ErrBadSignature for tampered subject, got %v", err)
	}
}

func TestSubjectFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := SubjectFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}

func TestSubjectFromToken_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := SubjectFromToken(tok, secret); !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed for empty subject, got %v", err)
	}
}
