package history

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName is the fixed key the web console stores its recent list
// under, the counterpart of the page script's local-storage key.
const CookieName = "shortpanel_recent"

const cookieMaxAge = 30 * 24 * time.Hour

// CookieCodec encodes the recent list into a signed, encrypted cookie.
type CookieCodec struct {
	codec *securecookie.SecureCookie
}

// NewCookieCodec creates a codec. hashKey must be 32 bytes, blockKey
// 16, 24 or 32 bytes.
func NewCookieCodec(hashKey, blockKey []byte) *CookieCodec {
	return &CookieCodec{codec: securecookie.New(hashKey, blockKey)}
}

// Decode reads the recent list from the request's cookie. A missing,
// tampered or otherwise undecodable cookie yields an empty list: stale
// client state is discarded, never surfaced as an error.
func (c *CookieCodec) Decode(r *http.Request) List {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return List{}
	}

	var list List
	if err := c.codec.Decode(CookieName, cookie.Value, &list); err != nil {
		return List{}
	}

	return list
}

// Encode writes the recent list to the response as a cookie.
func (c *CookieCodec) Encode(w http.ResponseWriter, list List) error {
	encoded, err := c.codec.Encode(CookieName, list)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(cookieMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// RequestStore adapts a CookieCodec to the Store interface for one
// request/response pair. A list saved during the request shadows the
// request cookie on later loads, so the page rendered by the same
// request already sees the updated history.
type RequestStore struct {
	codec *CookieCodec
	r     *http.Request
	w     http.ResponseWriter
	saved List
}

// NewRequestStore binds the codec to a request and response.
func NewRequestStore(codec *CookieCodec, w http.ResponseWriter, r *http.Request) *RequestStore {
	return &RequestStore{codec: codec, r: r, w: w}
}

// Load returns the list saved earlier in this request, or the one from
// the request cookie.
func (s *RequestStore) Load() (List, error) {
	if s.saved != nil {
		return s.saved, nil
	}

	return s.codec.Decode(s.r), nil
}

// Save writes the list to the response cookie.
func (s *RequestStore) Save(list List) error {
	if err := s.codec.Encode(s.w, list); err != nil {
		return err
	}

	s.saved = list

	return nil
}
