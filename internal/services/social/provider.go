package social

import (
	"context"
	"strings"
)

// SyncPayload is what a platform sync yields: esports teams and games the
// account follows. Real platform APIs sit behind this interface; the default
// provider fakes plausible payloads the same way the verification oracle does.
type SyncPayload struct {
	Teams []string
	Games []string
}

type Provider interface {
	FetchProfileData(ctx context.Context, platform, username string) (SyncPayload, error)
}

type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

func (p *SimulatedProvider) FetchProfileData(_ context.Context, platform, _ string) (SyncPayload, error) {
	switch strings.ToLower(platform) {
	case "twitter":
		return SyncPayload{Teams: []string{"FURIA", "Team Liquid", "G2 Esports"}}, nil
	case "instagram":
		return SyncPayload{Teams: []string{"FURIA", "Cloud9", "FaZe Clan"}}, nil
	default:
		return SyncPayload{Teams: []string{"FURIA"}}, nil
	}
}
