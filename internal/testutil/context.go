package testutil

import (
	"context"
	"net/http"
)

func withUser(r *http.Request, name string) context.Context {
	return context.WithValue(r.Context(), userKey{}, name)
}

func userFrom(r *http.Request) string {
	name, _ := r.Context().Value(userKey{}).(string)
	return name
}
