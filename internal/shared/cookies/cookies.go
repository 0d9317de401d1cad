package cookies

import (
	"net/http"
	"net/url"
	"strings"

	"salvage-server/internal/shared/config"
)

const AuthCookieName = "auth_token"

func SetAuthCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	cookie := createAuthCookie(cfg)
	cookie.Value = token
	cookie.MaxAge = int(cfg.Auth.TokenExpiration.Seconds())

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter, cfg *config.Config) {
	cookie := createAuthCookie(cfg)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

// AuthToken returns the token carried by the auth cookie, if any.
func AuthToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func createAuthCookie(cfg *config.Config) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Path:     "/",
		Domain:   extractDomain(cfg.Frontend.URL),
		HttpOnly: true,
		Secure:   cfg.Auth.CookieSecure,
		SameSite: parseSameSite(cfg.Auth.CookieSameSite),
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := parsedURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch strings.ToLower(sameSiteStr) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
