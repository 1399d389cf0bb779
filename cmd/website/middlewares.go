package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/adampresley/kenshot/cmd/website/internal/api"
	"github.com/adampresley/kenshot/cmd/website/internal/auth"
	"github.com/adampresley/kenshot/pkg/models"
)

// memberSession is the slice of the session service the middlewares need.
type memberSession interface {
	Get(r *http.Request) (*models.Member, error)
}

/*
newMemberMiddleware puts the logged-in member, if any, onto the request
context. Anonymous and expired visitors pass through with no member;
the gallery is public to browse.
*/
func newMemberMiddleware(sessionService memberSession) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err    error
				member *models.Member
			)

			if member, err = sessionService.Get(r); err != nil || member == nil || member.IsExpired() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), "member", member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

/*
newOwnerOnlyMiddleware gates destructive routes. Callers without a live
session are sent to login (pages) or told 401 (API); callers whose
email isn't on the owner allow-list get 403. Sessions expire on a fixed
15-minute clock and are never renewed here.
*/
func newOwnerOnlyMiddleware(sessionService memberSession, ownerEmails []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err    error
				member *models.Member
			)

			isAPI := strings.HasPrefix(r.URL.Path, "/api/")

			if member, err = sessionService.Get(r); err != nil || member == nil || member.IsExpired() {
				if isAPI {
					api.WriteMessage(w, http.StatusUnauthorized, "Your session has expired. Please sign in again.")
					return
				}

				http.Redirect(w, r, "/auth/login", http.StatusTemporaryRedirect)
				return
			}

			if !auth.IsOwner(member.Email, ownerEmails) {
				if isAPI {
					api.WriteMessage(w, http.StatusForbidden, "You are not allowed to modify the gallery.")
					return
				}

				http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
				return
			}

			ctx := context.WithValue(r.Context(), "member", member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
