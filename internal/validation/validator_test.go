package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
)

func TestValidator_IsEmail(t *testing.T) {
	v := New()

	valid := []string{"a@b.co", "jane.doe@example.com", "x@y.z.w", "first+tag@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, v.IsEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{"", "plain", "a@b", "@b.co", "a@.co", "a@b.", "a b@c.de", "a@b c.de", "a@@b.co", "a@b.co "}
	for _, email := range invalid {
		assert.False(t, v.IsEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidator_IsPassword(t *testing.T) {
	v := New()

	assert.False(t, v.IsPassword(""))
	assert.False(t, v.IsPassword("12345"))
	assert.True(t, v.IsPassword("123456"))
	// A surrogate pair counts as two units.
	assert.True(t, v.IsPassword("😀😀😀"))
	assert.False(t, v.IsPassword("😀ab"))
}

func TestValidator_Resume(t *testing.T) {
	v := New()

	for _, mime := range AllowedResumeTypes {
		assert.True(t, v.IsResumeType(mime), mime)
	}
	assert.False(t, v.IsResumeType("text/plain"))
	assert.False(t, v.IsResumeType(""))
	assert.False(t, v.IsResumeType("application/pdf "))

	assert.True(t, v.IsResumeSize(0))
	assert.True(t, v.IsResumeSize(MaxResumeSize))
	assert.False(t, v.IsResumeSize(MaxResumeSize+1))
}

func TestValidator_Posting(t *testing.T) {
	v := New()

	t.Run("complete posting passes", func(t *testing.T) {
		err := v.Posting(model.JobPosting{Title: "t", Company: "c", Location: "l", Type: "Full-time", Description: "d"})
		assert.NoError(t, err)
	})

	t.Run("missing fields are reported", func(t *testing.T) {
		err := v.Posting(model.JobPosting{Title: "t", Location: "l"})
		require.Error(t, err)

		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"Company", "Description", "Type"}, fe.Fields())
		assert.Equal(t, "is required", fe["Company"])
	})
}

func TestValidator_ApplicationFields(t *testing.T) {
	v := New()
	resume := &model.ResumeMeta{FileName: "cv.pdf", MimeType: "application/pdf", Size: 10}

	assert.NoError(t, v.ApplicationFields(model.ApplicationForm{Name: "n", Email: "e", CoverLetter: "c", Resume: resume}))

	err := v.ApplicationFields(model.ApplicationForm{Name: "n", Email: "e", CoverLetter: "c"})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"Resume"}, fe.Fields())

	err = v.ApplicationFields(model.ApplicationForm{Name: "n", Email: "e", Resume: resume})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"CoverLetter"}, fe.Fields())
}
