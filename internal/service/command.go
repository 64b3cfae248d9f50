package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiaot623/termmon/internal/domain"
	"github.com/xiaot623/termmon/internal/historyline"
	"github.com/xiaot623/termmon/internal/policy"
)

// RecordInput is a validated ingestion request.
type RecordInput struct {
	SessionID string
	Pwd       string
	Status    uint32
	Line      historyline.Line
}

// RecordCommand stores the command described by in. It returns nil without
// error when there is nothing to record: an empty command line or a policy skip.
func (s *Service) RecordCommand(ctx context.Context, in RecordInput) (*domain.Command, error) {
	if in.Line.Command == "" {
		return nil, nil
	}

	cmd := &domain.Command{
		SessionID: strings.ToLower(in.SessionID),
		Index:     in.Line.Index,
		Command:   in.Line.Command,
		Pwd:       in.Pwd,
		Status:    in.Status,
		Timestamp: s.now().UTC(),
	}

	if s.policyEngine != nil {
		decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
			SessionID: cmd.SessionID,
			Index:     cmd.Index,
			Command:   cmd.Command,
			Pwd:       cmd.Pwd,
			Status:    cmd.Status,
		})
		if err != nil {
			return nil, err
		}
		if decision == domain.RecordDecisionSkip {
			return nil, nil
		}
	}

	s.mu.Lock()
	_, err := s.store.InsertCommand(ctx, cmd)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to record command: %w", err)
	}

	return cmd, nil
}

// RecentCommands returns the recency window, most recent first.
func (s *Service) RecentCommands(ctx context.Context) ([]domain.Command, error) {
	s.mu.Lock()
	commands, err := s.store.RecentCommands(ctx, domain.RecentWindow)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent commands: %w", err)
	}
	return commands, nil
}

func (s *Service) CountCommands(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CountCommands(ctx)
}

// Digest renders the recency window oldest first, one command per line,
// followed by a blank line.
func (s *Service) Digest(ctx context.Context) (string, error) {
	commands, err := s.RecentCommands(ctx)
	if err != nil {
		return "", err
	}
	return RenderDigest(commands), nil
}

// RenderDigest renders commands given most recent first.
func RenderDigest(commands []domain.Command) string {
	var b strings.Builder
	for i := len(commands) - 1; i >= 0; i-- {
		b.WriteString(commands[i].Command)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}
