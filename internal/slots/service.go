// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prefabrica/prefabrica/internal/platform/constants"
	"github.com/prefabrica/prefabrica/internal/platform/validate"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// Field identifiers used in validation errors.
const (
	FieldSlotType      = "slot_type"
	FieldSlotPosition  = "slot_position"
	FieldContentType   = "content_type"
	FieldContentID     = "content_id"
	FieldRotationOrder = "rotation_order"
)

// # Service Layer

// Service orchestrates slot administration and the homepage read path.
//
// Admin mutations write through to the repository; the visible-slot read
// path combines a fresh pool snapshot with the scheduler's rotation index,
// memoized in Redis per (type, index) pair so a busy homepage never recomputes
// the same tick twice.
type Service struct {
	repo      Repository
	scheduler *Scheduler
	cache     *redis.Client
	logger    *slog.Logger
}

// NewService constructs a slot [Service].
func NewService(repo Repository, scheduler *Scheduler, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		scheduler: scheduler,
		cache:     cache,
		logger:    logger,
	}
}

// Scheduler exposes the rotation scheduler for lifecycle wiring in main.
func (service *Service) Scheduler() *Scheduler {
	return service.scheduler
}

// # Homepage Read Path

/*
Visible returns the slots of one type currently shown on the homepage,
along with the rotation index the window was computed at.

Description: The cache key embeds the rotation index, so a cached window can
never leak across ticks: a new index is a new key, and the old entry simply
expires. Cache failures degrade to a direct computation, never to an error.
*/
func (service *Service) Visible(context stdctx.Context, slotType publish.Tier) ([]Slot, uint64, error) {
	index := service.scheduler.Index()
	cacheKey := fmt.Sprintf("%s%s:%d", constants.RedisPrefixHomeSlots, slotType, index)

	if cached, err := service.cache.Get(context, cacheKey).Result(); err == nil {
		var window []Slot
		if err := json.Unmarshal([]byte(cached), &window); err == nil {
			return window, index, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		service.logger.Warn("slot_cache_read_failed", slog.Any("error", err))
	}

	pool, err := service.repo.ListActive(context, slotType)
	if err != nil {
		return nil, 0, err
	}

	window := Rotate(pool, slotType, index)

	if payload, err := json.Marshal(window); err == nil {
		setErr := service.cache.Set(context, cacheKey, payload, constants.HomeSlotCacheTTL).Err()
		if setErr != nil {
			service.logger.Warn("slot_cache_write_failed", slog.Any("error", setErr))
		}
	}

	return window, index, nil
}

// Homepage is the visible window of every slot type at the current tick.
type Homepage struct {
	RotationIndex uint64 `json:"rotation_index"`
	Premium       []Slot `json:"premium"`
	Destacado     []Slot `json:"destacado"`
	Standard      []Slot `json:"standard"`
}

/*
HomepageSlots resolves all three slot buckets for homepage rendering.

Description: Each bucket is resolved independently; the reported rotation
index is the premium bucket's. A tick landing between bucket reads can skew
buckets by one position for a single render, which is acceptable.
*/
func (service *Service) HomepageSlots(context stdctx.Context) (*Homepage, error) {
	premium, index, err := service.Visible(context, publish.TierPremium)
	if err != nil {
		return nil, err
	}

	destacado, _, err := service.Visible(context, publish.TierDestacado)
	if err != nil {
		return nil, err
	}

	standard, _, err := service.Visible(context, publish.TierStandard)
	if err != nil {
		return nil, err
	}

	return &Homepage{
		RotationIndex: index,
		Premium:       premium,
		Destacado:     destacado,
		Standard:      standard,
	}, nil
}

// # Slot Administration

/*
ListSlots returns every slot of one type for the admin management screen.
*/
func (service *Service) ListSlots(context stdctx.Context, slotType publish.Tier) ([]Slot, error) {
	if !slotType.IsValid() {
		return nil, validate.RequiredError(FieldSlotType, "Unknown slot type")
	}
	return service.repo.List(context, slotType)
}

/*
GetSlot returns one slot row by ID.
*/
func (service *Service) GetSlot(context stdctx.Context, id string) (*Slot, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateSlot validates and persists a new homepage slot.

Description: Assigns a UUIDv7 identity and defaults the start date to now
when omitted. Rotation picks the slot up on the next pool snapshot; no
scheduler coordination is needed.
*/
func (service *Service) CreateSlot(context stdctx.Context, slot *Slot) error {
	if err := service.validateSlot(slot); err != nil {
		return err
	}

	if slot.ID == "" {
		slot.ID = uuid.New()
	}
	if slot.StartDate == nil {
		now := time.Now()
		slot.StartDate = &now
	}

	if err := service.repo.Create(context, slot); err != nil {
		return err
	}

	service.logger.Info("slot_created",
		slog.String("slot_id", slot.ID),
		slog.String("slot_type", string(slot.SlotType)),
		slog.Int("rotation_order", slot.RotationOrder),
	)
	return nil
}

/*
UpdateSlot validates and overwrites an existing slot.
*/
func (service *Service) UpdateSlot(context stdctx.Context, slot *Slot) error {
	if err := service.validateSlot(slot); err != nil {
		return err
	}

	if err := service.repo.Update(context, slot); err != nil {
		return err
	}

	service.logger.Info("slot_updated", slog.String("slot_id", slot.ID))
	return nil
}

/*
SetSlotActive toggles a slot in or out of the rotation pool.
*/
func (service *Service) SetSlotActive(context stdctx.Context, id string, isActive bool) error {
	if err := service.repo.SetActive(context, id, isActive); err != nil {
		return err
	}

	service.logger.Info("slot_active_toggled",
		slog.String("slot_id", id),
		slog.Bool("is_active", isActive),
	)
	return nil
}

/*
DeleteSlot removes a slot permanently.
*/
func (service *Service) DeleteSlot(context stdctx.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("slot_deleted", slog.String("slot_id", id))
	return nil
}

// validateSlot runs the request-shape checks shared by create and update.
func (service *Service) validateSlot(slot *Slot) error {
	validator := &validate.Validator{}

	validator.OneOf(FieldSlotType, string(slot.SlotType),
		string(publish.TierStandard),
		string(publish.TierDestacado),
		string(publish.TierPremium),
	)
	validator.Custom(FieldSlotPosition, slot.SlotPosition < 1, "Must be 1 or greater")
	validator.Custom(FieldRotationOrder, slot.RotationOrder < 0, "Cannot be negative")

	if slot.ContentType != "" {
		validator.OneOf(FieldContentType, string(slot.ContentType),
			string(ContentProvider),
			string(ContentHouse),
			string(ContentServiceProduct),
		)
		validator.Required(FieldContentID, slot.ContentID)
	}

	return validator.Err()
}
