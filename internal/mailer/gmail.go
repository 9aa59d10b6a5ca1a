package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer delivers mail through the Gmail API on behalf of the
// authenticated account
type GmailMailer struct {
	service *gmail.Service
}

// NewGmailMailer builds a sender from OAuth credential and token files. The
// token file must already exist; it is obtained out of band.
func NewGmailMailer(ctx context.Context, credentialsPath, tokenPath string) (*GmailMailer, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read oauth token: %w", err)
	}

	client := oauthClient(ctx, config, token)
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailMailer{service: srv}, nil
}

func oauthClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token) *http.Client {
	return config.Client(ctx, token)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

// Send delivers an HTML message via users.messages.send
func (m *GmailMailer) Send(ctx context.Context, to, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
		"\r\n%s", to, subject, body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := m.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to send message to %s: %w", to, err)
	}
	return nil
}
