package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shulchan/internal/registration/models"
	dErrors "shulchan/pkg/errors"
)

func validRequest() models.Request {
	return models.Request{
		FirstName: "משה",
		LastName:  "כהן",
		Origin:    models.OriginSephardic,
		Gender:    models.GenderMale,
	}
}

func TestRequest_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Request)
		message string
	}{
		{"missing first name", func(r *models.Request) { r.FirstName = "" }, "First name is required"},
		{"whitespace first name", func(r *models.Request) { r.FirstName = "   " }, "First name is required"},
		{"missing last name", func(r *models.Request) { r.LastName = "" }, "Last name is required"},
		{"missing origin", func(r *models.Request) { r.Origin = "" }, "Invalid origin selection"},
		{"unknown origin", func(r *models.Request) { r.Origin = "mizrahi" }, "Invalid origin selection"},
		{"missing gender", func(r *models.Request) { r.Gender = "" }, "Invalid gender selection"},
		{"unknown gender", func(r *models.Request) { r.Gender = "other" }, "Invalid gender selection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := Request(req)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			assert.Equal(t, tt.message, dErrors.MessageOf(err))
		})
	}
}

func TestRequest_Email(t *testing.T) {
	req := validRequest()

	req.Email = ""
	assert.NoError(t, Request(req), "email is optional")

	req.Email = "a@b.com"
	assert.NoError(t, Request(req))

	req.Email = "A.Person+tag@Example.CO.IL"
	assert.NoError(t, Request(req))

	for _, bad := range []string{"nope", "a@b", "a@b.c", "@b.com", "a b@c.com"} {
		req.Email = bad
		err := Request(req)
		assert.Error(t, err, "email %q must be rejected", bad)
		assert.Equal(t, "Invalid email format", dErrors.MessageOf(err))
	}
}

func TestRequest_Phone(t *testing.T) {
	req := validRequest()

	req.Phone = ""
	assert.NoError(t, Request(req), "phone is optional")

	req.Phone = "050-1234567"
	assert.NoError(t, Request(req))

	req.Phone = "+972 (50) 123-4567"
	assert.NoError(t, Request(req))

	req.Phone = "12"
	err := Request(req)
	assert.Error(t, err, "too-short phone must be rejected")
	assert.Equal(t, "Invalid phone format", dErrors.MessageOf(err))

	req.Phone = "050-12345678901234567890"
	assert.Error(t, Request(req), "too-long phone must be rejected")

	req.Phone = "050-123456a"
	assert.Error(t, Request(req), "letters must be rejected")
}

func TestRequest_AccountCreation(t *testing.T) {
	req := validRequest()
	req.CreateAccount = true

	err := Request(req)
	assert.Equal(t, "Email is required for account creation", dErrors.MessageOf(err))

	req.Email = "a@b.com"
	err = Request(req)
	assert.Equal(t, "Password must be at least 6 characters", dErrors.MessageOf(err))

	req.Password = "123"
	err = Request(req)
	assert.Equal(t, "Password must be at least 6 characters", dErrors.MessageOf(err))

	req.Password = "123456"
	assert.NoError(t, Request(req))
}

func TestRequest_OrderShortCircuits(t *testing.T) {
	// Everything is wrong; the first rule in order wins.
	err := Request(models.Request{Email: "bad", Phone: "1"})
	assert.Equal(t, "First name is required", dErrors.MessageOf(err))
}
