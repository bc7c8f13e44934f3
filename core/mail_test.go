package core

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessage_Render(t *testing.T) {
	type person struct {
		FirstName string
		Username  string
	}
	to := []mail.Address{{Name: "Jane", Address: "jane@example.com"}}

	t.Run("plain body", func(t *testing.T) {
		msg := EmailMessage{To: to, Subject: "hi", BodyStr: "just text"}
		require.NoError(t, msg.Render("Studyhub"))
		assert.Equal(t, "just text", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
		assert.True(t, msg.HasRecipients())
		assert.True(t, msg.HasContent())
	})

	t.Run("welcome template", func(t *testing.T) {
		msg := EmailMessage{To: to, TemplateName: "welcome", TemplateData: person{"Jane", "jane_doe"}}
		require.NoError(t, msg.Render("Studyhub"))
		assert.Contains(t, msg.TextContent, "Hi Jane,")
		assert.Contains(t, msg.TextContent, "Your username is jane_doe.")
		assert.Contains(t, msg.TextContent, "The Studyhub team")
		assert.Contains(t, msg.HTMLContent, "<strong>jane_doe</strong>")
		assert.Contains(t, msg.HTMLContent, "<title>Studyhub</title>")
	})

	t.Run("html is escaped", func(t *testing.T) {
		msg := EmailMessage{To: to, TemplateName: "welcome", TemplateData: person{"<b>Jane</b>", "jane"}}
		require.NoError(t, msg.Render("Studyhub"))
		assert.Contains(t, msg.HTMLContent, "&lt;b&gt;Jane&lt;/b&gt;")
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := EmailMessage{To: to, TemplateName: "nope"}
		assert.EqualError(t, msg.Render("Studyhub"), `unknown email template "nope"`)
	})

	t.Run("nothing to send", func(t *testing.T) {
		msg := EmailMessage{}
		require.NoError(t, msg.Render("Studyhub"))
		assert.False(t, msg.HasRecipients())
		assert.False(t, msg.HasContent())
	})
}
