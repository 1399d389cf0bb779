package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/kenshot/pkg/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	/*
	 * Sessions live for a fixed 15 minutes and are never silently
	 * renewed. An expired session forces a fresh login.
	 */
	SessionDuration = time.Minute * 15

	stateCookieName    = "kenshot_oauth_state"
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type AuthHandlers interface {
	LoginAction(w http.ResponseWriter, r *http.Request)
	CallbackAction(w http.ResponseWriter, r *http.Request)
	LogoutAction(w http.ResponseWriter, r *http.Request)
}

type AuthControllerConfig struct {
	ClientID       string
	ClientSecret   string
	RedirectURL    string
	SessionService sessions.Session[*models.Member]

	// UserInfoURL overrides Google's userinfo endpoint. Used in tests.
	UserInfoURL string
}

type AuthController struct {
	oauthConfig    *oauth2.Config
	sessionService sessions.Session[*models.Member]
	userInfoURL    string
}

func NewAuthController(config AuthControllerConfig) AuthController {
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultUserInfoURL
	}

	return AuthController{
		oauthConfig: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		sessionService: config.SessionService,
		userInfoURL:    config.UserInfoURL,
	}
}

/*
GET /auth/login
*/
func (c AuthController) LoginAction(w http.ResponseWriter, r *http.Request) {
	state := newState()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, c.oauthConfig.AuthCodeURL(state), http.StatusFound)
}

/*
GET /auth/callback
*/
func (c AuthController) CallbackAction(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		token  *oauth2.Token
		member *models.Member
	)

	stateCookie, err := r.Cookie(stateCookieName)

	if err != nil || stateCookie.Value == "" || stateCookie.Value != httphelpers.GetFromRequest[string](r, "state") {
		slog.Error("oauth state mismatch on callback")
		httphelpers.WriteText(w, http.StatusBadRequest, "Invalid login attempt. Please try again.")
		return
	}

	// The state cookie is single use.
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	code := httphelpers.GetFromRequest[string](r, "code")

	if token, err = c.oauthConfig.Exchange(r.Context(), code); err != nil {
		slog.Error("error exchanging oauth code", "error", err)
		httphelpers.WriteText(w, http.StatusBadGateway, "Login failed. Please try again.")
		return
	}

	if member, err = c.fetchMember(r, token); err != nil {
		slog.Error("error fetching user info", "error", err)
		httphelpers.WriteText(w, http.StatusBadGateway, "Login failed. Please try again.")
		return
	}

	if err = c.sessionService.Set(r, member); err != nil {
		slog.Error("error setting member session", "error", err)
	}

	if err = c.sessionService.Save(w, r); err != nil {
		slog.Error("error saving session", "error", err)
	}

	slog.Info("member logged in", "email", member.Email)
	http.Redirect(w, r, "/gallery", http.StatusFound)
}

/*
GET /auth/logout
*/
func (c AuthController) LogoutAction(w http.ResponseWriter, r *http.Request) {
	_ = c.sessionService.Destroy(w, r)
	_ = c.sessionService.Save(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (c AuthController) fetchMember(r *http.Request, token *oauth2.Token) (*models.Member, error) {
	var (
		err      error
		response *http.Response
		body     []byte
	)

	client := c.oauthConfig.Client(r.Context(), token)

	if response, err = client.Get(c.userInfoURL); err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}

	defer response.Body.Close()

	if body, err = io.ReadAll(response.Body); err != nil {
		return nil, fmt.Errorf("error reading user info response: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info fetch failed with status %d: %s", response.StatusCode, string(body))
	}

	userInfo := struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}{}

	if err = json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("error parsing user info response: %w", err)
	}

	if userInfo.Email == "" {
		return nil, fmt.Errorf("empty email in user info response")
	}

	return &models.Member{
		Email:     userInfo.Email,
		Name:      userInfo.Name,
		AvatarURL: userInfo.Picture,
		ExpiresAt: time.Now().Add(SessionDuration),
	}, nil
}

func newState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
