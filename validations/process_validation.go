package validations

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/shiurnotes/shiurnotes/pkg/lecturekey"
)

var kindRule = func() validation.Rule {
	kinds := make([]interface{}, len(domainLecture.Kinds))
	for i, k := range domainLecture.Kinds {
		kinds[i] = k
	}
	return validation.In(kinds...).Error(`Invalid request type. Must be "notes" or "transcript".`)
}()

var lectureURLRule = validation.By(func(value interface{}) error {
	raw, _ := value.(string)
	if _, err := lecturekey.ExtractID(raw); err != nil {
		return errors.New("Invalid YUTorah URL format")
	}
	return nil
})

// ValidateProcess checks a process request and fills in the default kind.
// Fields are checked one at a time so the client gets a single message.
func ValidateProcess(ctx context.Context, request *domainLecture.ProcessRequest) error {
	request.URL = strings.TrimSpace(request.URL)
	if request.Type == "" {
		request.Type = domainLecture.KindNotes
	}

	err := validation.ValidateWithContext(ctx, request.URL,
		validation.Required.Error("No URL provided"),
	)
	if err == nil {
		err = validation.ValidateWithContext(ctx, request.Type, kindRule)
	}
	if err == nil {
		err = validation.ValidateWithContext(ctx, request.URL, lectureURLRule)
	}

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

// ValidateLectureURL checks a bare lecture URL, as used by the normalize endpoint.
func ValidateLectureURL(ctx context.Context, rawURL string) error {
	err := validation.ValidateWithContext(ctx, strings.TrimSpace(rawURL),
		validation.Required.Error("No URL provided"),
		lectureURLRule,
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
