package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie carrying the server-side login
const SessionName = "canteen_session"

const (
	sessionKeyLoggedIn = "logged_in"
	sessionKeyUserID   = "user_id"
	sessionKeyUserType = "user_type"
)

// NewSessionStore creates the cookie store for logins
func NewSessionStore(secret string, maxAge time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Identity is the logged-in user of a request
type Identity struct {
	UserID   string
	UserType string
}

// CurrentIdentity reads the login from the request's session cookie
func CurrentIdentity(store sessions.Store, r *http.Request) (Identity, bool) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return Identity{}, false
	}
	if loggedIn, _ := session.Values[sessionKeyLoggedIn].(bool); !loggedIn {
		return Identity{}, false
	}
	userID, _ := session.Values[sessionKeyUserID].(string)
	userType, _ := session.Values[sessionKeyUserType].(string)
	return Identity{UserID: userID, UserType: userType}, true
}

// StartSession records a login on the response
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, id Identity) error {
	session, err := store.New(r, SessionName)
	if err != nil && session == nil {
		return err
	}
	session.Values[sessionKeyLoggedIn] = true
	session.Values[sessionKeyUserID] = id.UserID
	session.Values[sessionKeyUserType] = id.UserType
	return session.Save(r, w)
}

// EndSession expires the login cookie
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, SessionName)
	if err != nil && session == nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
