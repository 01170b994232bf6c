package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_RenderAll(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	for _, name := range []string{
		TemplateInterestReceived,
		TemplateInvitation,
		TemplateInterestApproved,
		TemplateProfileApproved,
		TemplateProfileWaitListed,
	} {
		out, err := tm.Render(name, TemplateData{
			"InfluencerName": "Ann",
			"BrandName":      "Acme",
			"EventTitle":     "Summer <launch>",
			"EventID":        "e1",
			"AppURL":         "https://app.example.com",
			"Reason":         "need more followers",
		})
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestTemplateManager_EscapesHTML(t *testing.T) {
	tm, err := NewDefaultTemplateManager()
	require.NoError(t, err)

	out, err := tm.Render(TemplateInterestApproved, TemplateData{"EventTitle": "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestTemplateManager_Unknown(t *testing.T) {
	tm := NewTemplateManager()
	_, err := tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "a@b.c"}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "a@b.c"}, nil)
	assert.NoError(t, p.Validate())
	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}
