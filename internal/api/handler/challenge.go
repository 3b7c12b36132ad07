package handler

import (
	"pulsearena/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupChallenge struct {
	container *do.Injector
}

func (gr *groupChallenge) GetChallenges(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	cards, err := serviceTournament.GetChallengeCards(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, cards, nil)
}

func (gr *groupChallenge) GetChallenge(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceParticipation, err := do.Invoke[*services.ServiceParticipation](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	tournament, err := serviceTournament.GetChallenge(ctx, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	card, err := tournament.CardData()
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	joined := false
	if user := ResolveOptionalUser(ctx); user != nil {
		joined, err = serviceParticipation.HasJoined(ctx, user.ID, tournament.ID)
		if err != nil {
			return httpx.RestAbort(c, nil, err)
		}
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"challenge": tournament,
		"card":      card,
		"joined":    joined,
	}, nil)
}

// Leave withdraws the session user's live participation.
func (gr *groupChallenge) Leave(c echo.Context) error {
	serviceParticipation, err := do.Invoke[*services.ServiceParticipation](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	participation, err := serviceParticipation.CancelParticipation(ctx, user.ID, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, participation, nil)
}

func (gr *groupChallenge) GetChallengeLeaderboard(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	leaderboard, err := serviceLeaderboard.GetChallengeLeaderboard(ctx, c.Param("id"), ResolveOptionalUser(ctx))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, leaderboard, nil)
}
