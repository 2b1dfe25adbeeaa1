package http

import (
	"errors"
	"net/http"

	"rentalmarket-backend/internal/domain"
)

const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-ID"
)

var errMissingActor = errors.New("actor headers are not provided")

// actorFromRequest reads the caller identity set by the upstream auth gateway.
// Admins may omit the ID.
func actorFromRequest(r *http.Request) (domain.Actor, error) {
	roleHeader := r.Header.Get(HeaderActorRole)
	if roleHeader == "" {
		return domain.Actor{}, errMissingActor
	}
	role, err := domain.ParseRole(roleHeader)
	if err != nil {
		return domain.Actor{}, errMissingActor
	}

	id := r.Header.Get(HeaderActorID)
	if id == "" && role != domain.RoleAdmin {
		return domain.Actor{}, errMissingActor
	}
	return domain.Actor{Role: role, ID: id}, nil
}
