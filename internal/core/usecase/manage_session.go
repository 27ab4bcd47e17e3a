package usecase

import (
	"context"
	"time"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/session"

	"github.com/google/uuid"
)

// ManageSessionUseCase - сессии просмотра на стороне сервера: состояние фильтров
// живет в session.Store, клиент только отправляет команды.
type ManageSessionUseCase struct {
	sessions *session.Manager
}

func NewManageSessionUseCase(sessions *session.Manager) *ManageSessionUseCase {
	return &ManageSessionUseCase{sessions: sessions}
}

func snapshot(id uuid.UUID, store *session.Store, lastSeen time.Time) *domain.SessionSnapshot {
	state, view := store.Snapshot()
	return &domain.SessionSnapshot{
		ID:       id,
		State:    state,
		View:     view,
		LastSeen: lastSeen,
	}
}

// Create открывает сессию; seed == nil означает значения по умолчанию.
func (uc *ManageSessionUseCase) Create(ctx context.Context, seed *domain.FilterState) (*domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CreateSession",
	})

	id, store, err := uc.sessions.Create(seed)
	if err != nil {
		ucLogger.Warn("Failed to create session", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Browsing session created", port.Fields{"session_id": id.String()})
	return snapshot(id, store, time.Now()), nil
}

func (uc *ManageSessionUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.SessionSnapshot, error) {
	store, seen, err := uc.sessions.Get(id)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Session lookup failed", port.Fields{"session_id": id.String()})
		return nil, err
	}
	return snapshot(id, store, seen), nil
}

// Apply выполняет команды по порядку. На первой ошибке останавливается:
// уже примененные команды остаются в силе.
func (uc *ManageSessionUseCase) Apply(ctx context.Context, id uuid.UUID, commands []domain.SessionCommand) (*domain.SessionSnapshot, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApplySessionCommands",
		"session_id": id.String(),
		"commands":   len(commands),
	})

	store, seen, err := uc.sessions.Get(id)
	if err != nil {
		ucLogger.Warn("Session not found", nil)
		return nil, err
	}

	for i, cmd := range commands {
		if _, err := session.Apply(store, cmd); err != nil {
			ucLogger.Warn("Session command rejected", port.Fields{
				"index": i,
				"op":    cmd.Op,
				"error": err.Error(),
			})
			return nil, err
		}
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return snapshot(id, store, seen), nil
}

func (uc *ManageSessionUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.sessions.Delete(id); err != nil {
		return err
	}
	contextkeys.LoggerFromContext(ctx).Info("Browsing session closed", port.Fields{"session_id": id.String()})
	return nil
}
