package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	subject := bytes.NewBufferString("Test Subject")
	plainBody := bytes.NewBufferString("Test Plain Body")
	htmlBody := bytes.NewBufferString("Test HTML Body")

	testCases := []struct {
		name      string
		dialErr   error
		expectErr bool
	}{
		{name: "sent"},
		{name: "smtp failure", dialErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "RecipeHub <no-reply@recipehub.test>",
			}

			mockParser.On("ParseTemplate", welcomeTemplate, mock.Anything).Return(subject, plainBody, htmlBody, nil)
			mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
				return len(msgs) == 1 &&
					msgs[0].GetHeader("To")[0] == "test@example.com" &&
					msgs[0].GetHeader("Subject")[0] == "Test Subject"
			})).Return(tc.dialErr)

			err := mailer.send("test@example.com", welcomeData{Name: "Test"}, welcomeTemplate)
			assert.Equal(t, tc.expectErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}

func TestSendEmailTemplateError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)
	mailer := Mail{dialer: mockDialer, parser: mockParser}

	mockParser.On("ParseTemplate", "missing.html", mock.Anything).
		Return((*bytes.Buffer)(nil), (*bytes.Buffer)(nil), (*bytes.Buffer)(nil), errors.New("unknown template"))

	err := mailer.send("test@example.com", nil, "missing.html")
	assert.Error(t, err)
	mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}
