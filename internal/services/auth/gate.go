package auth

import (
	"path"
	"strings"

	"cinevault/proj/internal/domain/models"
)

type Decision int

const (
	Allow Decision = iota
	Redirect
)

// PathPolicy classifies request paths for the authorization gate. Public
// paths always pass, bypassed paths (static assets, the auth API, the
// healthcheck) are never gated, and everything else requires a valid session.
type PathPolicy struct {
	LoginPath      string
	publicExact    map[string]struct{}
	publicPrefixes []string
	bypassExact    map[string]struct{}
	bypassPrefixes []string
	assetExts      map[string]struct{}
}

func NewPathPolicy(loginPath string) *PathPolicy {
	return &PathPolicy{
		LoginPath: loginPath,
		publicExact: map[string]struct{}{
			"/":         {},
			"/login":    {},
			"/register": {},
			"/movies":   {},
		},
		publicPrefixes: []string{"/movies/"},
		bypassExact: map[string]struct{}{
			"/favicon.ico": {},
			"/healthcheck": {},
		},
		bypassPrefixes: []string{"/auth/", "/static/"},
		assetExts: map[string]struct{}{
			".svg":  {},
			".png":  {},
			".jpg":  {},
			".jpeg": {},
			".gif":  {},
			".webp": {},
			".ico":  {},
			".css":  {},
			".js":   {},
		},
	}
}

func (p *PathPolicy) bypassed(reqPath string) bool {
	if _, ok := p.bypassExact[reqPath]; ok {
		return true
	}
	for _, prefix := range p.bypassPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}
	_, ok := p.assetExts[path.Ext(reqPath)]
	return ok
}

func (p *PathPolicy) public(reqPath string) bool {
	if _, ok := p.publicExact[reqPath]; ok {
		return true
	}
	for _, prefix := range p.publicPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}
	return false
}

// Authorize decides whether a request may proceed. The decision depends only
// on the path and the session, never on storage.
func (p *PathPolicy) Authorize(reqPath string, session *models.Session) Decision {
	if p.bypassed(reqPath) || p.public(reqPath) {
		return Allow
	}
	if session.Valid() {
		return Allow
	}
	return Redirect
}
