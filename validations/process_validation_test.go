package validations

import (
	"context"
	"testing"

	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProcess_DefaultsToNotes(t *testing.T) {
	req := domainLecture.ProcessRequest{URL: " https://www.yutorah.org/lectures/1154805/shiur "}
	require.NoError(t, ValidateProcess(context.Background(), &req))
	assert.Equal(t, domainLecture.KindNotes, req.Type)
	assert.Equal(t, "https://www.yutorah.org/lectures/1154805/shiur", req.URL)
}

func TestValidateProcess_Transcript(t *testing.T) {
	req := domainLecture.ProcessRequest{URL: "https://www.yutorah.org/sidebar/lecturedata/42", Type: domainLecture.KindTranscript}
	assert.NoError(t, ValidateProcess(context.Background(), &req))
}

func TestValidateProcess_Errors(t *testing.T) {
	cases := []struct {
		name string
		req  domainLecture.ProcessRequest
		msg  string
	}{
		{"missing url", domainLecture.ProcessRequest{}, "No URL provided"},
		{"blank url", domainLecture.ProcessRequest{URL: "   "}, "No URL provided"},
		{"bad type", domainLecture.ProcessRequest{URL: "https://www.yutorah.org/lectures/1", Type: "summary"}, `Invalid request type. Must be "notes" or "transcript".`},
		{"type checked before url shape", domainLecture.ProcessRequest{URL: "https://example.com/x", Type: "summary"}, `Invalid request type. Must be "notes" or "transcript".`},
		{"not a lecture url", domainLecture.ProcessRequest{URL: "https://www.yutorah.org/about"}, "Invalid YUTorah URL format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProcess(context.Background(), &tc.req)
			require.Error(t, err)

			var verr pkgError.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.msg, verr.Error())
			assert.Equal(t, 400, verr.StatusCode())
		})
	}
}

func TestValidateLectureURL(t *testing.T) {
	assert.NoError(t, ValidateLectureURL(context.Background(), "https://www.yutorah.org/lecture.cfm/77"))
	assert.EqualError(t, ValidateLectureURL(context.Background(), ""), "No URL provided")
	assert.EqualError(t, ValidateLectureURL(context.Background(), "https://www.yutorah.org/"), "Invalid YUTorah URL format")
}
