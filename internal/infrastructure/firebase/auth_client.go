package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient struct {
	client *auth.Client
	apiKey string
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

// SignInWithEmailPassword exchanges credentials for an ID token through the
// Identity Toolkit REST endpoint; the Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("firebase web api key is not configured")
	}

	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("sign-in failed: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.IDToken, nil
}

func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "connection-probe")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}
