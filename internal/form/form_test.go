package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pwInput struct {
	Old     string `form:"old_password"`
	New     string `form:"new_password" validate:"required"`
	Confirm string `form:"new_password2" validate:"eqfield=New"`
}

type codeInput struct {
	Code  string `form:"code,trim"`
	Count int    `form:"count"`
}

func post(body url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestHandleSubmitValid(t *testing.T) {
	var in pwInput
	err := HandleSubmit(httptest.NewRecorder(), post(url.Values{
		"old_password": {"a"}, "new_password": {"b"}, "new_password2": {"b"},
	}), &in)
	require.NoError(t, err)
	assert.Equal(t, "a", in.Old)
	assert.Equal(t, "b", in.New)
}

func TestHandleSubmitMismatch(t *testing.T) {
	var in pwInput
	err := HandleSubmit(httptest.NewRecorder(), post(url.Values{
		"new_password": {"b"}, "new_password2": {"c"},
	}), &in)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	fields := Fields(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "new_password2", fields[0].Name)
	assert.Equal(t, "eqfield", fields[0].Rule)
}

func TestHandleSubmitEmptyNewPassword(t *testing.T) {
	var in pwInput
	err := HandleSubmit(httptest.NewRecorder(), post(url.Values{}), &in)
	assert.True(t, IsValidationError(err))
}

func TestTrimOptionAndNonStringFields(t *testing.T) {
	var in codeInput
	errs, err := ValidateForm(url.Values{"code": {"  123456 "}, "count": {"9"}}, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "123456", in.Code)
	assert.Equal(t, 0, in.Count)
}

func TestValidateFormRejectsNonPointer(t *testing.T) {
	_, err := ValidateForm(url.Values{}, pwInput{})
	assert.Error(t, err)
	assert.False(t, IsValidationError(err))
}
