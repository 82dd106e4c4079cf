package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/studymind/studymind-backend/internal/clients/redis"
	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

const progressCacheTimeout = 2 * time.Second

type ProgressService interface {
	// Estimate reports processing completion in [0,100]. It never fails:
	// an unavailable or malformed cache entry degrades to 0.
	Estimate(ctx context.Context, docID uuid.UUID, status types.Status) int
}

type progressService struct {
	log   *logger.Logger
	cache redisclient.ProgressCache
}

func NewProgressService(baseLog *logger.Logger, cache redisclient.ProgressCache) ProgressService {
	serviceLog := baseLog.With("service", "ProgressService")
	return &progressService{log: serviceLog, cache: cache}
}

func (ps *progressService) Estimate(ctx context.Context, docID uuid.UUID, status types.Status) int {
	switch status {
	case types.StatusReady:
		// Completed documents always report 100; a stale or missing cache
		// entry must never reduce it.
		return 100
	case types.StatusProcessing:
		return ps.fromCache(ctx, docID)
	default:
		return 0
	}
}

func (ps *progressService) fromCache(ctx context.Context, docID uuid.UUID) int {
	if ps.cache == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, progressCacheTimeout)
	defer cancel()

	key := fmt.Sprintf("progress:%s", docID)
	raw, found, err := ps.cache.Get(ctx, key)
	if err != nil {
		ps.log.Warn("progress cache read failed", "document_id", docID, "error", err)
		return 0
	}
	if !found {
		// A job that has not written progress yet is indistinguishable
		// from 0%.
		return 0
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		ps.log.Debug("non-numeric progress value", "document_id", docID, "value", raw)
		return 0
	}
	if val < 0 {
		return 0
	}
	if val > 100 {
		return 100
	}
	return val
}
