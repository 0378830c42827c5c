package controlplane

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

const envelopeStatusError = "error"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// unwrapEnvelope accepts both {status, message, data} envelopes and bare payloads.
func unwrapEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed, nil
	}

	if env.Status == envelopeStatusError {
		apiErr := pkghttp.NewAPIError(pkghttp.ErrorKindHTTP, http.StatusOK, env.Message)
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if apiErr.Message == "" {
				apiErr.Message = env.Error.Message
			}
		}
		return nil, apiErr
	}

	if env.Status == "" || len(env.Data) == 0 || string(env.Data) == "null" {
		return trimmed, nil
	}

	return env.Data, nil
}

type loginIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginOut struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        *userOut `json:"user"`
}

func (o loginOut) toResult() domain.LoginResult {
	token := o.Token
	if token == "" {
		token = o.AccessToken
	}

	result := domain.LoginResult{
		Token:     domain.Token(token),
		ExpiresIn: time.Duration(o.ExpiresIn) * time.Second,
	}
	if o.User != nil {
		result.User = o.User.toDomain()
	}

	return result
}

type userOut struct {
	ID        flexibleID `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin string     `json:"last_login"`
}

func (o userOut) toDomain() domain.User {
	user := domain.User{
		ID:       string(o.ID),
		Username: o.Username,
		Email:    o.Email,
		Role:     o.Role,
	}

	if o.LastLogin != "" {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
			if parsed, err := time.Parse(layout, o.LastLogin); err == nil {
				user.LastLogin = &parsed
				break
			}
		}
	}

	return user
}

// flexibleID accepts both string and numeric identifiers.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*id = flexibleID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("unsupported id %s: %w", string(data), err)
	}
	if _, err := strconv.ParseFloat(number.String(), 64); err != nil {
		return err
	}

	*id = flexibleID(number.String())
	return nil
}
