package service

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"
)

// VoteChange reports the effect of an upvote or its removal.
// Changed is false when the voter was already in (or absent from) the set.
type VoteChange struct {
	Target   models.VoteTarget `json:"target"`
	TargetID uint              `json:"target_id"`
	Voter    models.UserID     `json:"voter"`
	Changed  bool              `json:"changed"`
	Count    int64             `json:"count"`
}

func applyVote(ctx context.Context, votes repository.VoteRepository, target models.VoteTarget, targetID uint, voter models.UserID, add bool) (*VoteChange, error) {
	var (
		changed bool
		err     error
		action  = "add"
	)
	if add {
		changed, err = votes.Add(ctx, target, targetID, voter)
	} else {
		action = "remove"
		changed, err = votes.Remove(ctx, target, targetID, voter)
	}
	if err != nil {
		return nil, err
	}

	count, err := votes.Count(ctx, target, targetID)
	if err != nil {
		return nil, err
	}
	if changed {
		observability.VoteChanges.WithLabelValues(string(target), action).Inc()
	}
	return &VoteChange{Target: target, TargetID: targetID, Voter: voter, Changed: changed, Count: count}, nil
}
