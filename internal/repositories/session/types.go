package session

import "github.com/KirkDiggler/standoff/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Profile string
}

type DeleteSessionInput struct {
	Profile string
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}
