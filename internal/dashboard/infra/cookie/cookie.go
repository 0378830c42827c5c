package cookie

import (
	"net/http"
	"net/url"
	"sync"
)

// RequestCookies reads cookies of an incoming request and writes them to its response.
// Cookies written during the request shadow the incoming ones.
type RequestCookies struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	r       *http.Request
	written map[string]*http.Cookie
}

func NewRequestCookies(w http.ResponseWriter, r *http.Request) *RequestCookies {
	return &RequestCookies{
		w:       w,
		r:       r,
		written: make(map[string]*http.Cookie),
	}
}

func (c *RequestCookies) Cookie(name string) (*http.Cookie, bool) {
	c.mu.Lock()
	written, ok := c.written[name]
	c.mu.Unlock()
	if ok {
		if isExpired(written) {
			return nil, false
		}
		return written, true
	}

	cookie, err := c.r.Cookie(name)
	if err != nil {
		return nil, false
	}

	return cookie, true
}

func (c *RequestCookies) SetCookie(cookie *http.Cookie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.written[cookie.Name] = cookie
	http.SetCookie(c.w, cookie)
}

// JarCookies keeps cookies for one site in a cookie jar, the way a browser would.
type JarCookies struct {
	jar  http.CookieJar
	site *url.URL
}

func NewJarCookies(jar http.CookieJar, site *url.URL) JarCookies {
	return JarCookies{
		jar:  jar,
		site: site,
	}
}

func (c JarCookies) Cookie(name string) (*http.Cookie, bool) {
	for _, cookie := range c.jar.Cookies(c.site) {
		if cookie.Name == name {
			return cookie, true
		}
	}

	return nil, false
}

func (c JarCookies) SetCookie(cookie *http.Cookie) {
	c.jar.SetCookies(c.site, []*http.Cookie{cookie})
}

func isExpired(cookie *http.Cookie) bool {
	return cookie.MaxAge < 0 || cookie.Value == ""
}
