package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Hello",
		BodyHTML: "<p>Hi</p>",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		params email.SendEmailParams
	}{
		{"missing recipient", email.SendEmailParams{Subject: "s", BodyHTML: "b"}},
		{"invalid recipient", email.SendEmailParams{SendTo: "nope", Subject: "s", BodyHTML: "b"}},
		{"missing subject", email.SendEmailParams{SendTo: "user@example.com", BodyHTML: "b"}},
		{"missing body", email.SendEmailParams{SendTo: "user@example.com", Subject: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.params.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	base := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "no-reply@example.com",
		SupportEmail:         "support@example.com",
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewPostmarkClient(base)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("missing tokens rejected", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.PostmarkServerToken = ""
		_, err := email.NewPostmarkClient(cfg)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("invalid sender rejected", func(t *testing.T) {
		t.Parallel()

		cfg := base
		cfg.SenderEmail = "not-an-email"
		_, err := email.NewPostmarkClient(cfg)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	params := email.OTPSignupMessage("user@example.com", "123456")
	require.NoError(t, sender.SendEmail(context.Background(), params))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2) // .html + .json

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = filepath.Join(dir, e.Name())
		case ".json":
			jsonFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)

	body, err := os.ReadFile(htmlFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "123456"))

	meta, err := os.ReadFile(jsonFile)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(meta, &decoded))
	assert.Equal(t, "user@example.com", decoded["send_to"])
	assert.Equal(t, email.SubjectOTPVerification, decoded["subject"])
}

func TestOTPMessages(t *testing.T) {
	t.Parallel()

	signup := email.OTPSignupMessage("a@b.co", "654321")
	assert.Equal(t, email.SubjectOTPVerification, signup.Subject)
	assert.Contains(t, signup.BodyHTML, "<b>654321</b>")

	reset := email.OTPPasswordResetMessage("a@b.co", "111222")
	assert.Equal(t, email.SubjectOTPPasswordReset, reset.Subject)
	assert.Contains(t, reset.BodyHTML, "<b>111222</b>")
}
